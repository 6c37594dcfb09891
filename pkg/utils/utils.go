package utils

import "strings"

// StringInSlice checks whether str is present in list.
func StringInSlice(str string, list []string) bool {
	for _, v := range list {
		if v == str {
			return true
		}
	}
	return false
}

// StringInSliceFold checks whether str is present in list, ignoring case.
func StringInSliceFold(str string, list []string) bool {
	for _, v := range list {
		if strings.EqualFold(v, str) {
			return true
		}
	}
	return false
}
