package bytecode

// copyRuns returns a copy of the given line run slice.
func copyRuns(src []LineRun) []LineRun {
	if src == nil {
		return nil
	}
	dst := make([]LineRun, len(src))
	copy(dst, src)
	return dst
}
