// internal/label/label.go
package label

import "strings"

// String serializes l into its canonical form.
func (l Label) String() string {
	if l.IsZero() {
		return ""
	}
	var sb strings.Builder
	writeDirName(&sb, l.Dir, l.Name)
	if l.HasToolchain() {
		sb.WriteByte('(')
		writeDirName(&sb, l.ToolchainDir, l.ToolchainName)
		sb.WriteByte(')')
	}
	return sb.String()
}

func writeDirName(sb *strings.Builder, dir, name string) {
	sb.WriteString(dir)
	sb.WriteByte(':')
	sb.WriteString(name)
}

// Equal compares every component, including the toolchain qualifier.
func (l Label) Equal(other Label) bool {
	return l == other
}

// Less orders labels by their canonical string.
func (l Label) Less(other Label) bool {
	return l.String() < other.String()
}

// MarshalText implements encoding.TextMarshaler so labels render as strings.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
