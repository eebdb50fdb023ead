package main

import "github.com/tldv-downloader/tldv/cmd"

func main() {
	cmd.Execute()
}
