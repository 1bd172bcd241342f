package model

import "fmt"

// InstallResult mirrors the native install status codes.
type InstallResult int32

const (
	InstallSuccess              InstallResult = 0
	InstallOverwrite            InstallResult = 1
	InstallFailure              InstallResult = 2
	InstallBaseInstallAttempted InstallResult = 3
)

var installResults = newCodeTable(InstallSuccess,
	InstallSuccess, InstallOverwrite, InstallFailure, InstallBaseInstallAttempted)

// InstallResultFrom decodes a native code, defaulting to InstallSuccess.
func InstallResultFrom(code int) InstallResult {
	return installResults.decode(code)
}

// InstallResults lists every variant in code order.
func InstallResults() []InstallResult {
	return installResults.values()
}

// Int returns the native code.
func (r InstallResult) Int() int {
	return int(r)
}

func (r InstallResult) String() string {
	switch r {
	case InstallSuccess:
		return "Success"
	case InstallOverwrite:
		return "Overwrite"
	case InstallFailure:
		return "Failure"
	case InstallBaseInstallAttempted:
		return "BaseInstallAttempted"
	}
	return fmt.Sprintf("InstallResult(%d)", int32(r))
}

// Installed reports whether the result left new content on disk.
func (r InstallResult) Installed() bool {
	return r == InstallSuccess || r == InstallOverwrite
}
