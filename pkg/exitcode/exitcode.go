// Package exitcode provides standardized exit codes for whirlwind
package exitcode

// Exit codes for the whirlwind CLI
const (
	Success         = 0
	GeneralError    = 1
	InvalidRoot     = 2
	ValidationError = 3
	FileSystemError = 4
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case InvalidRoot:
		return "Invalid root directory"
	case ValidationError:
		return "Validation error"
	case FileSystemError:
		return "File system error"
	default:
		return "Unknown error"
	}
}
