package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Common error messages from git
const (
	errMsgNotRepository     = "not a git repository"
	errMsgNoUpstream        = "no upstream"
	errMsgAuthFailed        = "Authentication failed"
	errMsgPermissionDenied  = "Permission denied"
	errMsgCouldNotResolve   = "Could not resolve host"
	errMsgCouldNotRead      = "Could not read from remote repository"
	errMsgUnableToAccess    = "unable to access"
	errMsgConnectionRefused = "Connection refused"
	errMsgRepoNotFound      = "repository not found"
	errMsgNotFastForward    = "Not possible to fast-forward"
)

// GitError represents a git command error
type GitError struct {
	ExitCode int
	Stderr   string
	Args     []string
	err      error
}

func (e *GitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.err)
	}
	return fmt.Sprintf("git %s failed: %s", strings.Join(e.Args, " "), strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error {
	return e.err
}

// NewGitError creates a GitError from command output and error
func NewGitError(args []string, stderr string, err error) *GitError {
	exitCode := -1

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return &GitError{
		ExitCode: exitCode,
		Stderr:   stderr,
		Args:     args,
		err:      err,
	}
}

// IsNotRepository checks if the error indicates not a git repository
func IsNotRepository(err error) bool {
	return containsError(err, errMsgNotRepository)
}

// IsNoUpstream checks if the error indicates no upstream branch configured
func IsNoUpstream(err error) bool {
	return containsError(err, errMsgNoUpstream)
}

// IsUnreachable checks if the error indicates the remote could not be
// contacted (network down, host unknown, auth failure, remote removed).
func IsUnreachable(err error) bool {
	return containsError(err, errMsgCouldNotResolve) ||
		containsError(err, errMsgCouldNotRead) ||
		containsError(err, errMsgUnableToAccess) ||
		containsError(err, errMsgConnectionRefused) ||
		containsError(err, errMsgAuthFailed) ||
		containsError(err, errMsgPermissionDenied) ||
		containsError(err, errMsgRepoNotFound)
}

// IsNotFastForward checks if the error indicates the local branch has
// diverged and cannot be fast-forwarded
func IsNotFastForward(err error) bool {
	return containsError(err, errMsgNotFastForward)
}

// containsError checks if the error contains a specific message
func containsError(err error, msg string) bool {
	if err == nil {
		return false
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return strings.Contains(strings.ToLower(gitErr.Stderr), strings.ToLower(msg))
	}

	return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(msg))
}

// GetExitCode returns the exit code from a git error, or -1 if not available
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return gitErr.ExitCode
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
