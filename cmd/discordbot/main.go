/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
)

const (
	EnvBotToken   = "DISCORD_BOT_TOKEN"
	EnvPublicKey  = "DISCORD_PUBLIC_KEY"
	EnvAppID      = "DISCORD_APP_ID"
	EnvGolfCmdID  = "DISCORD_GOLF_CMD_ID"
	EnvCmdHash    = "DISCORD_GOLF_CMD_HASH"
	EnvClubAPIURL = "GOLFCLUB_API_URL"
	EnvPort       = "PORT"

	defaultClubAPIURL = "http://localhost:3000"
	defaultPort       = "8080"
)

var (
	botPubKey ed25519.PublicKey
	botAppId  string
	client    *discordgo.Session
	clubAPI   *clubClient
)

type TopLevelCommand string

const (
	GolfCmd TopLevelCommand = "golf"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	GolfCmd: golfCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := dispatch(r.Context(), &inter)
	if resp == nil {
		log.Printf("discordbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

// dispatch routes a verified interaction to its handler. It returns nil for
// interaction types the bot does not handle.
func dispatch(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	switch inter.Type {
	case discordgo.InteractionPing:
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponsePong,
		}
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp := newEphemeralResponse()
			resp.Data.Content = fmt.Sprintf("unknown command '%v'", name)
			return resp
		}
		return hdlr(ctx, inter)
	}

	return nil
}

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func golfCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(GolfCmd),
		Description: "Golf club commands; try /golf help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(GolfHelpCmd),
				Description: "Show usage for golf",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(GolfAboutCmd),
				Description: "Show information about golfclub-teebot",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(GolfMembersCmd),
				Description: "List active club members",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "search",
						Description: "Match name, email or phone",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(GolfGroupCmd),
				Description: "Preview balanced tee groups",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "members",
						Description: "Comma separated member IDs (as listed by members)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "mode",
						Description: "Balancing mode (default is equal)",
						Required:    false,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "equal", Value: "equal"},
							{Name: "handicap", Value: "handicap"},
							{Name: "random", Value: "random"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "size",
						Description: "Players per group (default is 4)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "separate",
						Description: "Group men and women separately (default is false)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(GolfSchedulesCmd),
				Description: "Show upcoming tee times",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "days",
						Description: "Number of days to show (default is 14)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(GolfStatsCmd),
				Description: "Show a member's scoring summary",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "memberid",
						Description: "Member id (as returned by members)",
						Required:    true,
					},
					broadcastOption(),
				},
			},
		},
	}
}

func cmdHash(cmd *discordgo.ApplicationCommand) string {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("discordbot.reg: failed to marshal cmd: %v", err)
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:])
}

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand,
	lastHash string) bool {

	hexString := cmdHash(cmd)
	shouldUpdate := (hexString != lastHash)

	if shouldUpdate {
		log.Printf("discordbot.reg: updating cmd reg; please set %v to %v",
			EnvCmdHash, hexString)
	}

	return shouldUpdate
}

func registerSlashCommands() {
	golfCmd := golfCommand()
	cmdID := os.Getenv(EnvGolfCmdID)

	if cmdID == "" {
		cmd, err := client.ApplicationCommandCreate(botAppId, "", golfCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", golfCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); please set %v",
			cmd.Name, cmd.ID, EnvGolfCmdID)
	} else if shouldUpdateCmdRegistration(golfCmd, os.Getenv(EnvCmdHash)) {
		cmd, err := client.ApplicationCommandEdit(botAppId, "", cmdID, golfCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", golfCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func mustEnv(name string) string {
	v := os.Getenv(name)
	if v == "" {
		log.Fatalf("discordbot.init: %v is not set", name)
	}
	return v
}

func setup() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("discordbot.init: failed to read .env: %v", err)
	}

	pubKeyBytes, err := hex.DecodeString(mustEnv(EnvPublicKey))
	if err != nil {
		log.Fatalf("discordbot.init: Failed to parse public key: %v", err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)
	botAppId = mustEnv(EnvAppID)

	client, err = discordgo.New("Bot " + mustEnv(EnvBotToken))
	if err != nil {
		log.Fatalf("discordbot.init: Failed to initialize discord client: %v", err)
	}

	apiURL := os.Getenv(EnvClubAPIURL)
	if apiURL == "" {
		apiURL = defaultClubAPIURL
	}
	clubAPI = newClubClient(apiURL)
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	setup()

	go registerSlashCommands()

	port := os.Getenv(EnvPort)
	if port == "" {
		port = defaultPort
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:%v", hostname, port)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
