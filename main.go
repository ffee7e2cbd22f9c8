package main

import "github.com/ValentinKolb/socialKV/cmd"

func main() {
	cmd.Execute()
}
