package main

import "github.com/saadjs/fooddiary/cmd/diary"

func main() {
	diary.Execute()
}
