package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProgram = `chassis.setPose(16.5, -55, 0)
chassis.moveToPoint(46.5, -44, 1000);
chassis.moveToPoint(48.2, -72, 1000, { .forwards = false, .maxSpeed = 90 });
`

func TestParseSampleProgram(t *testing.T) {
	path, err := Parse(sampleProgram)
	require.NoError(t, err)
	require.Len(t, path, 3)

	assert.Equal(t, -55.0, path[0].X)
	assert.Equal(t, 16.5, path[0].Y)
	require.NotNil(t, path[0].Radians)
	assert.Equal(t, 0.0, *path[0].Radians)

	assert.Equal(t, -44.0, path[1].X)
	assert.Equal(t, 46.5, path[1].Y)
	assert.Equal(t, 1000.0, path[1].Timeout)
	assert.Nil(t, path[1].Attributes)

	require.NotNil(t, path[2].Attributes)
	require.NotNil(t, path[2].Attributes.Forwards)
	assert.False(t, *path[2].Attributes.Forwards)
	require.NotNil(t, path[2].Attributes.MaxSpeed)
	assert.Equal(t, 90.0, *path[2].Attributes.MaxSpeed)
	assert.Nil(t, path[2].Attributes.MinSpeed)
}

func TestSerializeSampleProgram(t *testing.T) {
	path, err := Parse(sampleProgram)
	require.NoError(t, err)

	want := "chassis.setPose(16.5, -55, 0);\n" +
		"chassis.moveToPoint(46.5, -44, 1000);\n" +
		"chassis.moveToPoint(48.2, -72, 1000, { .forwards = false, .maxSpeed = 90 });\n"
	assert.Equal(t, want, Serialize(path))
}

func TestSerializeParseRoundTrip(t *testing.T) {
	path := []Waypoint{
		{X: -55, Y: 16.5, Radians: floatPtr(1.57), CodeBefore: "// start"},
		{X: 0.25, Y: -3, Timeout: 750, Attributes: &Attributes{MinSpeed: floatPtr(20), EarlyExitRange: floatPtr(4)}},
		{X: 70, Y: 70, Timeout: 0, CodeBefore: "intake.spin();\n  pause(200);", CodeAfter: "intake.stop();"},
	}

	got, err := Parse(Serialize(path))
	require.NoError(t, err)
	require.Len(t, got, len(path))
	for i := range path {
		assert.Equal(t, path[i].X, got[i].X, "x of %d", i)
		assert.Equal(t, path[i].Y, got[i].Y, "y of %d", i)
		if i == 0 {
			assert.Equal(t, *path[0].Radians, *got[0].Radians)
		} else {
			assert.Equal(t, path[i].Timeout, got[i].Timeout, "timeout of %d", i)
			assert.Equal(t, path[i].Attributes, got[i].Attributes, "attributes of %d", i)
		}
		assert.Equal(t, strings.Fields(path[i].CodeBefore), strings.Fields(got[i].CodeBefore))
		assert.Equal(t, strings.Fields(path[i].CodeAfter), strings.Fields(got[i].CodeAfter))
	}
}

func TestParseCodeFragments(t *testing.T) {
	code := `#include "main.h"

void autonomous() {
chassis.setPose(0, 0, 0);
intake.spin();
chassis.moveToPoint(10, 10, 1000);
// score
chassis.moveToPoint(20, 20, 1000);
intake.stop();
}
`
	path, err := Parse(code)
	require.NoError(t, err)
	require.Len(t, path, 3)

	assert.Equal(t, "#include \"main.h\"\n\nvoid autonomous() {", path[0].CodeBefore)
	assert.Equal(t, "intake.spin();", path[1].CodeBefore)
	assert.Equal(t, "// score", path[2].CodeBefore)
	assert.Equal(t, "intake.stop();\n}", path[2].CodeAfter)
	assert.Empty(t, path[0].CodeAfter)
}

func TestParseFreeTextOnly(t *testing.T) {
	path, err := Parse("// nothing here\nfoo();\n")
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = Parse("")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestParseLeadingMove(t *testing.T) {
	path, err := Parse("chassis.moveToPoint(5, 6, 700);\n")
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Equal(t, 6.0, path[0].X)
	assert.Equal(t, 700.0, path[0].Timeout)

	assert.Equal(t, "chassis.setPose(5, 6, 0);\n", Serialize(path))
}

func TestParseNearMissesAreFreeText(t *testing.T) {
	for _, line := range []string{
		"chassis.moveToPoint(1, 2);",
		"chassis.moveToPoint(a, 2, 3);",
		"chassis.setPose(1, 2, 3, { .forwards = true });",
		"chassis.moveToPoint(f(1), 2, 3);",
		"chassis.turnToHeading(90, 1000);",
		"chassis.moveToPoint(1, 2, 3",
	} {
		path, err := Parse(line)
		require.NoError(t, err, line)
		assert.Empty(t, path, line)
	}
}

func TestParseAttributeErrors(t *testing.T) {
	for _, attrs := range []string{
		"{ maxSpeed = 90 }",
		"{ .maxSpeed 90 }",
		"{ .maxSpeed = fast }",
		"{ .forwards = 1 }",
		"{ .maxSpeed = true }",
		"{ .turbo = 1 }",
	} {
		code := "chassis.setPose(0, 0, 0);\nchassis.moveToPoint(1, 2, 3, " + attrs + ");\n"
		path, err := Parse(code)
		assert.Nil(t, path, attrs)

		var perr *ParseError
		require.True(t, errors.As(err, &perr), attrs)
		assert.Equal(t, 2, perr.Line)
		assert.Contains(t, perr.Text, attrs)
	}
}

func TestParseEmptyAttributeList(t *testing.T) {
	path, err := Parse("chassis.moveToPoint(1, 2, 3, {});")
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Nil(t, path[0].Attributes)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "-55", formatNumber(-55))
	assert.Equal(t, "16.5", formatNumber(16.5))
	assert.Equal(t, "0.01", formatNumber(0.01))
	assert.Equal(t, "1000", formatNumber(1000))
}
