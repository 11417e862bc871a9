package toolutil

const (
	GOOSWindows = "windows"
	GOOSDarwin  = "darwin"
	GOOSLinux   = "linux"
)

// MaxFileReadBytes caps the raw bytes any read-style tool pulls from disk.
const MaxFileReadBytes int64 = 16 * 1024 * 1024 // 16MB
