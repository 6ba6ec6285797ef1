package service

import (
	"errors"
	"fmt"
)

var ErrFileIssue = errors.New("log file issue")

const (
	MsgEmptyFile          = "File is empty or can't be opened."
	MsgNothingToDelete    = "There was no file to delete"
	MsgNotWritable        = "Your log file is not writable"
	MsgEmptied            = "Emptied file"
	MsgCouldNotBeEmptied  = "File could not be emptied"
	msgNotFoundFormat     = "The file (%s) was not found. You can specify a different file/location in the settings."
	msgTooLargeFormat     = "Aborting. %s is larger than %d MB (%.2f). If you want to continue anyway add the 'ignore' queryvar"
	msgUnreadableFormat   = "The file (%s) could not be inspected: %v"
	msgDecodeFailedFormat = "The file (%s) does not contain valid text: %v"
)

type IssueKind int

const (
	IssueNotFound IssueKind = iota + 1
	IssueTooLarge
	IssueEmpty
	IssueUnreadable
	IssueUndecodable
)

// IssueError carries a diagnostic meant to be shown to the user as is.
type IssueError struct {
	Kind    IssueKind
	Message string
}

func (e *IssueError) Error() string {
	return e.Message
}

func (e *IssueError) Is(target error) bool {
	return target == ErrFileIssue
}

func notFoundIssue(path string) *IssueError {
	return &IssueError{Kind: IssueNotFound, Message: fmt.Sprintf(msgNotFoundFormat, path)}
}

func tooLargeIssue(path string, limitMB int, sizeMB float64) *IssueError {
	return &IssueError{Kind: IssueTooLarge, Message: fmt.Sprintf(msgTooLargeFormat, path, limitMB, sizeMB)}
}
