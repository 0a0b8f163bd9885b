// Command maestro serves game advice over HTTP so the API key stays off
// player machines.
package main

import (
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"git.lost.host/meutraa/opus/internal/advice"
	"git.lost.host/meutraa/opus/internal/config"
	"github.com/joho/godotenv"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app    = kingpin.New("maestro", "Advice server for opus.")
	listen = app.Flag("listen", "Address to listen on").Default(":8080").Short('l').String()
	key    = app.Flag("gemini-key", "Gemini API key").Envar("GEMINI_API_KEY").String()
	model  = app.Flag("gemini-model", "Gemini model").Default("gemini-2.5-flash").String()
)

func main() {
	if err := godotenv.Load(); nil != err && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalln("unable to read .env:", err)
	}
	app.Version(config.Version)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *key == "" {
		log.Println("no Gemini API key set, every request will get the fallback advice")
	}
	srv := &http.Server{
		Addr:              *listen,
		Handler:           advice.NewHandler(advice.NewGemini(advice.GeminiConfig{APIKey: *key, Model: *model})),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Println("listening on", *listen)
	if err := srv.ListenAndServe(); nil != err {
		log.Fatalln(err)
	}
}
