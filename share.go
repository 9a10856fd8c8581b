package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
)

const (
	shareVersion      = 0
	defaultShareParam = "path"
)

// sharePayload is the snapshot embedded in a share link.
type sharePayload struct {
	V    int        `json:"v"`
	Path []Waypoint `json:"path"`
}

// EncodeShare returns the base64 JSON payload for a path.
func EncodeShare(path []Waypoint) (string, error) {
	if path == nil {
		path = []Waypoint{}
	}
	data, err := json.Marshal(sharePayload{V: shareVersion, Path: path})
	if err != nil {
		return "", fmt.Errorf("encode share payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeShare parses a payload produced by EncodeShare. An empty payload is an
// empty path.
func DecodeShare(payload string) ([]Waypoint, error) {
	if payload == "" {
		return []Waypoint{}, nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode share payload: %w", err)
	}
	var p sharePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode share payload: %w", err)
	}
	if p.V != shareVersion {
		return nil, fmt.Errorf("version %d: %w", p.V, ErrShareVersion)
	}
	if p.Path == nil {
		p.Path = []Waypoint{}
	}
	if err := ValidatePath(p.Path); err != nil {
		return nil, fmt.Errorf("decode share payload: %w", err)
	}
	return p.Path, nil
}

// ShareURL embeds the path in base's query under param.
func ShareURL(base, param string, path []Waypoint) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share base url: %w", err)
	}
	payload, err := EncodeShare(path)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(param, payload)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DecodeShareURL consumes the share parameter. It returns the decoded path and
// the URL with the parameter removed. A missing parameter yields an empty path.
func DecodeShareURL(raw, param string) ([]Waypoint, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, "", fmt.Errorf("share url: %w", err)
	}
	q := u.Query()
	payload := q.Get(param)
	q.Del(param)
	u.RawQuery = q.Encode()
	path, err := DecodeShare(payload)
	if err != nil {
		return nil, u.String(), err
	}
	return path, u.String(), nil
}
