// cmd/client/main.go
//
// Line-oriented UDP client for exercising a game server by hand:
//
//	client -server 127.0.0.1:54123 -name Alice -room kitchen
//
// Commands: start <cards>, guess <n>, play <idx>, state, quit.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/alansouls/guessing-card-game/internal/client"
	"github.com/alansouls/guessing-card-game/internal/config"
)

func main() {
	cfg := config.Load()

	serverAddr := flag.String("server", cfg.ServerAddr, "server host:port")
	name := flag.String("name", "player", "display name")
	room := flag.String("room", "", "room to join or create")
	flag.Parse()
	if *room == "" {
		fmt.Fprintln(os.Stderr, "a -room name is required")
		os.Exit(2)
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	remote, err := client.Dial(*serverAddr, logger)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer remote.Close()

	seat, err := remote.Join(*name, *room)
	if err != nil {
		logger.Fatalf("join: %v", err)
	}
	fmt.Printf("joined room %q as seat %d\n", *room, seat)

	go func() {
		for msg := range remote.Errors() {
			fmt.Printf("server: %s\n", msg)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "start":
			n := argInt(fields, 1, 3)
			if err := remote.BeginGame(0, n); err != nil {
				fmt.Println(err)
			}
		case "guess":
			if err := remote.SubmitGuess(seat, argInt(fields, 1, 0)); err != nil {
				fmt.Println(err)
			}
		case "play":
			hand := remote.Hand(seat)
			idx := argInt(fields, 1, -1)
			if idx < 0 || idx >= len(hand) {
				fmt.Printf("pick a card index between 0 and %d\n", len(hand)-1)
				continue
			}
			if err := remote.PlayCard(seat, hand[idx]); err != nil {
				fmt.Println(err)
			}
		case "state":
			printState(remote, seat)
		case "quit", "exit":
			return
		default:
			fmt.Println("commands: start <cards> | guess <n> | play <idx> | state | quit")
		}
	}
}

func printState(remote *client.Remote, seat int) {
	if remote.SeatCount() == 0 {
		fmt.Println("no match in progress")
		return
	}
	phase := "playing"
	if remote.Bidding() {
		phase = "bidding"
	}
	if remote.Finished() {
		if winner, ok := remote.Winner(); ok {
			fmt.Printf("game over, seat %d wins\n", winner)
			return
		}
	}
	fmt.Printf("phase=%s turn=seat %d\n", phase, remote.ActiveSeat())
	for i := 0; i < remote.SeatCount(); i++ {
		fmt.Printf("  seat %d: quota=%d guess=%d wins=%d cards=%d\n",
			i, remote.Quota(i), remote.Guess(i), remote.Wins(i), remote.HandCount(i))
	}
	for i, c := range remote.Hand(seat) {
		fmt.Printf("  hand[%d] = %s\n", i, c)
	}
	for _, pc := range remote.PlayedCards() {
		fmt.Printf("  trick: seat %d played %s\n", pc.Seat, pc.Card)
	}
}

func argInt(fields []string, idx, def int) int {
	if idx >= len(fields) {
		return def
	}
	v, err := strconv.Atoi(fields[idx])
	if err != nil {
		return def
	}
	return v
}
