package data

import "io/fs"

// FileMode represents file mode and permission bits.
// It follows Unix file mode conventions with type and permission bits.
type FileMode uint32

// File mode constants for type and permission bits.
// These match Unix file mode semantics.
const (
	// Type bits
	ModeDir        FileMode = 1 << 31 // d: directory
	ModeSymlink    FileMode = 1 << 30 // L: symbolic link
	ModeNamedPipe  FileMode = 1 << 29 // p: named pipe (FIFO)
	ModeSocket     FileMode = 1 << 28 // S: Unix domain socket
	ModeDevice     FileMode = 1 << 27 // D: device file
	ModeCharDevice FileMode = 1 << 26 // c: Unix character device
	ModeIrregular  FileMode = 1 << 25 // ?: non-regular file

	// Permission bits
	ModePerm FileMode = 0777 // Unix permission bits

	ModeType = ModeDir | ModeSymlink | ModeNamedPipe | ModeSocket | ModeDevice | ModeCharDevice | ModeIrregular
)

// FromFileMode converts an io/fs mode into a FileMode.
func FromFileMode(mode fs.FileMode) FileMode {
	m := FileMode(mode.Perm())

	switch {
	case mode&fs.ModeDir != 0:
		m |= ModeDir
	case mode&fs.ModeSymlink != 0:
		m |= ModeSymlink
	case mode&fs.ModeNamedPipe != 0:
		m |= ModeNamedPipe
	case mode&fs.ModeSocket != 0:
		m |= ModeSocket
	case mode&fs.ModeCharDevice != 0:
		m |= ModeCharDevice | ModeDevice
	case mode&fs.ModeDevice != 0:
		m |= ModeDevice
	case mode&fs.ModeIrregular != 0:
		m |= ModeIrregular
	}

	return m
}

// IsDir reports whether m describes a directory.
func (m FileMode) IsDir() bool {
	return m&ModeDir != 0
}

// IsSymlink reports whether m describes a symbolic link.
func (m FileMode) IsSymlink() bool {
	return m&ModeSymlink != 0
}

// IsRegular reports whether m describes a regular file.
// A regular file has no type bits set (not directory, symlink, device, etc.).
func (m FileMode) IsRegular() bool {
	return m&ModeType == 0
}

// Perm returns the Unix permission bits in m (the lower 9 bits).
func (m FileMode) Perm() FileMode {
	return m & ModePerm
}

// String returns a textual representation of the mode in Unix ls -l format.
// Example: "drwxr-xr-x" for a directory with 755 permissions.
func (m FileMode) String() string {
	const str = "dLpSDc?"
	var buf [16]byte
	w := 0

	for i, c := range str {
		if m&(1<<uint(32-1-i)) != 0 {
			buf[w] = byte(c)
			w++
		}
	}

	if w == 0 {
		buf[w] = '-'
		w++
	}

	const rwx = "rwxrwxrwx"
	for i, c := range rwx {
		if m&(1<<uint(9-1-i)) != 0 {
			buf[w] = byte(c)
		} else {
			buf[w] = '-'
		}
		w++
	}

	return string(buf[:w])
}
