package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/palacenet/gpalace"
	"github.com/palacenet/gpalace/capture"
	"github.com/palacenet/gpalace/crypt"
	"github.com/palacenet/gpalace/msg"
)

func main() {
	addr := flag.String("a", "127.0.0.1:9998", "server address")
	nick := flag.String("n", "guest", "user name")
	journal := flag.String("j", "", "write a frame journal to this file")
	flag.Parse()

	options := []gpalace.Option{
		gpalace.SetKeepAliveSpan(30 * time.Second),
		// classic servers expect the historical scrambling on x-chat
		gpalace.SetObfuscator(crypt.Cipher{}),
	}
	if *journal != "" {
		f, err := os.Create(*journal)
		if err != nil {
			fmt.Println("journal:", err)
			return
		}
		defer f.Close()
		cw := capture.NewWriter(f)
		defer cw.Close()
		options = append(options, gpalace.SetCapture(cw))
	}

	cli := gpalace.NewClient(options...)

	cli.On(gpalace.EventLoggedOn, func(ev gpalace.Event) {
		lo := ev.(gpalace.LoggedOn)
		fmt.Printf("logged on to %s as user %d\n", lo.ServerName, lo.UserID)
	})
	cli.On(gpalace.EventRoomEntered, func(ev gpalace.Event) {
		re := ev.(gpalace.RoomEntered)
		fmt.Printf("entered room %d: %s\n", re.Room.ID, re.Room.Name)
	})
	cli.On(gpalace.EventChatReceived, func(ev gpalace.Event) {
		cr := ev.(gpalace.ChatReceived)
		switch cr.Chat {
		case gpalace.ChatWhisper:
			fmt.Printf("(%s whispers) %s\n", cr.Speaker, cr.Text)
		case gpalace.ChatGlobal, gpalace.ChatStaff:
			fmt.Printf("*** %s\n", cr.Text)
		case gpalace.ChatRoom:
			fmt.Printf("** %s\n", cr.Text)
		default:
			fmt.Printf("%s: %s\n", cr.Speaker, cr.Text)
		}
	})
	cli.On(gpalace.EventUserJoined, func(ev gpalace.Event) {
		fmt.Printf("%s joined\n", ev.(gpalace.UserJoined).User.Name)
	})
	cli.On(gpalace.EventUserLeft, func(ev gpalace.Event) {
		ul := ev.(gpalace.UserLeft)
		if ul.Name != "" {
			fmt.Printf("%s left\n", ul.Name)
		}
	})
	cli.On(gpalace.EventRoomListReceived, func(ev gpalace.Event) {
		for _, r := range ev.(gpalace.RoomListReceived).Rooms {
			fmt.Printf("  %4d  %-24s %d people\n", r.ID, r.Name, r.People)
		}
	})
	cli.On(gpalace.EventURLReceived, func(ev gpalace.Event) {
		fmt.Println("url:", ev.(gpalace.URLReceived).URL)
	})
	cli.On(gpalace.EventNavError, func(ev gpalace.Event) {
		fmt.Println("can't go there:", ev.(gpalace.NavError).Reason)
	})
	cli.On(gpalace.EventServerDown, func(ev gpalace.Event) {
		fmt.Println("server going down:", ev.(gpalace.ServerDown).Reason)
	})

	done := make(chan struct{})
	cli.On(gpalace.EventDisconnected, func(ev gpalace.Event) {
		d := ev.(gpalace.Disconnected)
		if d.Err != nil {
			fmt.Println("disconnected:", d.Err)
		} else {
			fmt.Println("disconnected")
		}
		close(done)
	})

	if err := cli.Connect(*addr); err != nil {
		fmt.Println("connect:", err)
		return
	}
	go cli.Run()

	if err := cli.Logon(*nick, ""); err != nil {
		fmt.Println("logon:", err)
		return
	}

	go readInput(cli)

	<-done
}

func readInput(cli *gpalace.Client) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			if err := cli.XTalk(line); err != nil {
				fmt.Println("talk:", err)
			}
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "/quit":
			cli.Logoff()
			return
		case "/rooms":
			cli.RequestRoomList()
		case "/go":
			if len(fields) == 2 {
				if id, err := strconv.Atoi(fields[1]); err == nil {
					cli.GotoRoom(int16(id))
				}
			}
		case "/move":
			if len(fields) == 3 {
				h, err1 := strconv.Atoi(fields[1])
				v, err2 := strconv.Atoi(fields[2])
				if err1 == nil && err2 == nil {
					cli.Move(int16(h), int16(v))
				}
			}
		case "/w":
			if len(fields) >= 3 {
				if id, err := strconv.Atoi(fields[1]); err == nil {
					cli.XWhisper(msg.UserID(id), strings.Join(fields[2:], " "))
				}
			}
		case "/who":
			for _, u := range cli.Users() {
				fmt.Printf("  %6d  %s\n", u.ID, u.Name)
			}
		case "/name":
			if len(fields) >= 2 {
				cli.SetName(strings.Join(fields[1:], " "))
			}
		case "/face":
			if len(fields) == 2 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					cli.SetFace(int16(n))
				}
			}
		case "/color":
			if len(fields) == 2 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					cli.SetColor(int16(n))
				}
			}
		case "/lock", "/unlock":
			if len(fields) == 2 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					if fields[0] == "/lock" {
						cli.LockDoor(uint16(n))
					} else {
						cli.UnlockDoor(uint16(n))
					}
				}
			}
		default:
			fmt.Println("commands: /quit /rooms /go <id> /move <h> <v> /w <id> <text> /who /name /face /color /lock /unlock")
		}
	}
}
