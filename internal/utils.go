package internal

import (
	"fmt"
	"os"
	"strings"
)

// Fatal prints msg and exits
func Fatal(msg ...interface{}) {
	fmt.Println(msg...)
	os.Exit(1)
}

// RunesToStrings returns each character as its own string, in order
func RunesToStrings(chars []rune) []string {
	var list = make([]string, len(chars))
	for i, c := range chars {
		list[i] = string(c)
	}
	return list
}

// JoinWithComma joins values with "," and no surrounding whitespace
func JoinWithComma(values []string) string {
	return strings.Join(values, ",")
}
