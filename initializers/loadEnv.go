package initializers

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env when present. A missing file is not an error; the
// process environment is used as is.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file loaded, using process environment")
	}
}
