package main

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareRoundTrip(t *testing.T) {
	path := []Waypoint{
		{X: -55, Y: 16.5, Radians: floatPtr(0), CodeBefore: "// auto"},
		{X: 1.25, Y: -2, Timeout: 1000, Attributes: &Attributes{Forwards: boolPtr(false), MaxSpeed: floatPtr(90)}},
	}

	payload, err := EncodeShare(path)
	require.NoError(t, err)

	got, err := DecodeShare(payload)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestSharePayloadShape(t *testing.T) {
	payload, err := EncodeShare(nil)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":0,"path":[]}`, string(raw))

	payload, err = EncodeShare([]Waypoint{{X: 1, Y: 2, Timeout: 3}})
	require.NoError(t, err)
	raw, err = base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":0,"path":[{"x":1,"y":2,"timeout":3}]}`, string(raw))
}

func TestDecodeShareErrors(t *testing.T) {
	_, err := DecodeShare("%%%not-base64")
	assert.Error(t, err)

	_, err = DecodeShare(base64.StdEncoding.EncodeToString([]byte(`{"v":1,"path":[]}`)))
	assert.ErrorIs(t, err, ErrShareVersion)

	_, err = DecodeShare(base64.StdEncoding.EncodeToString([]byte(`{"v":0,"path":[{"x":1,"timeout":-4}]}`)))
	assert.Error(t, err)

	_, err = DecodeShare(base64.StdEncoding.EncodeToString([]byte(`not json`)))
	assert.Error(t, err)
}

func TestShareURLStripsParameter(t *testing.T) {
	path := []Waypoint{{X: 3, Y: 4}}

	link, err := ShareURL("https://example.com/?mode=edit", "path", path)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.NotEmpty(t, u.Query().Get("path"))
	assert.Equal(t, "edit", u.Query().Get("mode"))

	got, stripped, err := DecodeShareURL(link, "path")
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "https://example.com/?mode=edit", stripped)
}

func TestDecodeShareURLWithoutParameter(t *testing.T) {
	got, stripped, err := DecodeShareURL("https://example.com/editor", "path")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Equal(t, "https://example.com/editor", stripped)
}
