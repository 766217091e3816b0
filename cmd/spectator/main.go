// Command spectator attaches a terminal to a running match: it renders the
// /watch event stream as colored ASCII and forwards w/s key presses to a
// chosen seat on /play.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/courtside/volley/game"
	"github.com/courtside/volley/render"
	"github.com/courtside/volley/utils"
	"github.com/lguibr/asciiring/helpers"
	"golang.org/x/net/websocket"
	"golang.org/x/sys/unix"
)

type keyMessage struct {
	Key     string `json:"key"`
	Pressed bool   `json:"pressed"`
}

func setRawMode(fd uintptr) (*unix.Termios, error) {
	settings, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	if err != nil {
		return nil, err
	}
	saved := *settings
	settings.Lflag &^= unix.ECHO | unix.ICANON
	if err := unix.IoctlSetTermios(int(fd), unix.TCSETS, settings); err != nil {
		return nil, err
	}
	return &saved, nil
}

func main() {
	server := flag.String("server", "localhost:3001", "host:port of the volley server")
	room := flag.String("room", "", "match or tournament id")
	seat := flag.Int("seat", -1, "seat to play; omit to spectate only")
	cols := flag.Int("cols", 120, "terminal columns for the raster")
	rows := flag.Int("rows", 40, "terminal rows for the raster")
	flag.Parse()

	watchConn, err := websocket.Dial(fmt.Sprintf("ws://%s/watch", *server), "", fmt.Sprintf("http://%s/", *server))
	if err != nil {
		fmt.Println("Error connecting to server:", err)
		os.Exit(1)
	}
	defer watchConn.Close()

	go renderLoop(watchConn, *room, *cols, *rows)

	if *seat < 0 {
		// Spectate until interrupted.
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		<-interrupt
		return
	}

	playConn, err := websocket.Dial(
		fmt.Sprintf("ws://%s/play?room=%s&seat=%d", *server, *room, *seat),
		"", fmt.Sprintf("http://%s/", *server))
	if err != nil {
		fmt.Println("Error joining seat:", err)
		os.Exit(1)
	}
	defer playConn.Close()

	saved, err := setRawMode(os.Stdin.Fd())
	if err != nil {
		fmt.Println("Error setting raw mode:", err)
		os.Exit(1)
	}
	restore := func() {
		_ = unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, saved)
	}
	defer restore()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		restore()
		os.Exit(0)
	}()

	// Terminals deliver presses, not releases: forward each press and clear
	// it right after, so a held key reads as a burst of taps.
	buffer := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buffer); err != nil {
			return
		}
		var key string
		switch buffer[0] {
		case 'w', 'W':
			key = "ArrowUp"
		case 's', 'S':
			key = "ArrowDown"
		case 'q', 'Q':
			restore()
			return
		default:
			continue
		}
		if err := sendKey(playConn, key, true); err != nil {
			return
		}
		if err := sendKey(playConn, key, false); err != nil {
			return
		}
	}
}

func sendKey(conn *websocket.Conn, key string, pressed bool) error {
	payload, err := json.Marshal(keyMessage{Key: key, Pressed: pressed})
	if err != nil {
		return err
	}
	_, err = conn.Write(payload)
	return err
}

// renderLoop decodes event batches and redraws on every frame of the chosen
// room (or any room when none was given).
func renderLoop(conn *websocket.Conn, room string, cols, rows int) {
	helpers.ClearScreen()
	var batch []json.RawMessage
	for {
		if err := websocket.JSON.Receive(conn, &batch); err != nil {
			fmt.Println("Error reading from server:", err)
			return
		}
		for _, raw := range batch {
			var header struct {
				MessageType string `json:"messageType"`
			}
			if err := json.Unmarshal(raw, &header); err != nil || header.MessageType != "frameState" {
				continue
			}
			var fs game.FrameState
			if err := json.Unmarshal(raw, &fs); err != nil {
				continue
			}
			if room != "" && fs.MatchID != room {
				continue
			}
			pixels := render.Rasterize(fs, cols, rows, utils.SurfaceWidth, utils.SurfaceHeight)
			helpers.ClearScreen()
			fmt.Print(render.ToASCII(fs, pixels))
		}
	}
}
