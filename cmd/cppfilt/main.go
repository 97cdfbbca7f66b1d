// Command cppfilt demangles C++ symbol names given as arguments or
// read line by line from stdin, in the spirit of the Haiku
// kernel-debugger c++filt test harness.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
