package main

import (
	"github.com/joho/godotenv"
	"github.com/minhtran-dev/studynotes-be/cmd"
	"github.com/sirupsen/logrus"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on environment")
	}
}
