package bbsconfig

import "path/filepath"

func dirOf(path string) string  { return filepath.Dir(path) }
func baseOf(path string) string { return filepath.Base(path) }
