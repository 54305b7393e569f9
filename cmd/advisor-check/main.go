// Command advisor-check sends one question through the configured advisor
// and prints the reply, so provider credentials can be verified by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/SteveHoareau18/timetravelagency/cmd/mainconfig"
	"github.com/SteveHoareau18/timetravelagency/internal/advisor"
	"github.com/SteveHoareau18/timetravelagency/internal/app/bootstrap"
	appconfig "github.com/SteveHoareau18/timetravelagency/internal/config"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

func main() {
	question := flag.String("q", "Quelle destination me conseillez-vous pour un premier voyage ?", "question to ask the advisor")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	advisorCfg := mainconfig.AdvisorConfig(cfg)

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load AWS config: %v\n", err)
		os.Exit(1)
	}

	responder, err := bootstrap.BuildResponder(ctx, advisorCfg, &awsCfg, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build advisor: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("provider=%s model=%s mode=%s\n", advisorCfg.Provider, advisorCfg.Model, responder.Mode())
	fmt.Printf("> %s\n", *question)

	start := time.Now()
	reply := responder.Respond(ctx, *question, nil)
	fmt.Printf("< %s\n", reply)
	fmt.Printf("(%v)\n", time.Since(start).Round(time.Millisecond))

	switch reply {
	case advisor.AuthFallback:
		fmt.Println("the provider rejected the credential")
		os.Exit(2)
	case advisor.TechnicalFallback:
		fmt.Println("the provider call failed; see logs")
		os.Exit(2)
	}
}
