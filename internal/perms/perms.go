// Package perms provides the file permission modes gswatchdog uses for the files it creates.
package perms

import "os"

// LogFile permissions for the log file given by --log-path.
// Mode 0644: owner read/write, group read, others read.
const LogFile os.FileMode = 0o644
