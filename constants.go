package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditField
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSaveCode FileOperation = iota
	FileOpSavePNG
	FileOpImport
)

type ConfirmAction int

const (
	ConfirmDeleteWaypoint ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

const (
	panelWidth    = 48
	minFieldRows  = 8
	pngExportSize = 1024
	messageTTL    = 4 * time.Second
)
