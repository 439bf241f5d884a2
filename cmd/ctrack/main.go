package main

import "careertrack/cmd/ctrack/root"

func main() {
	root.Execute()
}
