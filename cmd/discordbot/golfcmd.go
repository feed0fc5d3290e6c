/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/grouping"
	"github.com/mikeb26/golfclub-teebot/internal"
)

type GolfSubCommand string

const (
	GolfAboutCmd     GolfSubCommand = "about"
	GolfHelpCmd      GolfSubCommand = "help"
	GolfMembersCmd   GolfSubCommand = "members"
	GolfGroupCmd     GolfSubCommand = "group"
	GolfSchedulesCmd GolfSubCommand = "schedules"
	GolfStatsCmd     GolfSubCommand = "stats"
)

const (
	defaultScheduleDays = 14
	maxScheduleDays     = 90
)

var golfSubCmdHdlrs = map[GolfSubCommand]CmdHandler{
	GolfAboutCmd:     golfAboutCmdHandler,
	GolfHelpCmd:      golfHelpCmdHandler,
	GolfMembersCmd:   golfMembersCmdHandler,
	GolfGroupCmd:     golfGroupCmdHandler,
	GolfSchedulesCmd: golfSchedulesCmdHandler,
	GolfStatsCmd:     golfStatsCmdHandler,
}

func golfCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := golfHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := golfSubCmdHdlrs[GolfSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newEphemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subOptions returns the options passed to the invoked subcommand by name.
func subOptions(
	inter *discordgo.Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {

	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts
	}
	for _, opt := range data.Options[0].Options {
		opts[opt.Name] = opt
	}
	return opts
}

func broadcastRequested(
	opts map[string]*discordgo.ApplicationCommandInteractionDataOption) bool {

	if opt, ok := opts["broadcast"]; ok {
		return opt.BoolValue()
	}
	return false
}

// errorContent renders a backend failure for the user. Client errors carry
// the backend's message; anything else is logged.
func errorContent(what string, err error) string {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		return fmt.Sprintf("Unable to %v: %v", what, apiErr.Message)
	}
	return fmt.Sprintf("Error trying to %v: %v", what, err)
}

//go:embed about.txt
var aboutText string

func golfAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func golfHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func golfMembersCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := subOptions(inter)
	search := ""
	if opt, ok := opts["search"]; ok {
		search = opt.StringValue()
	}

	members, err := clubAPI.getMembers(ctx, search)
	if err != nil {
		resp.Data.Content = errorContent("list members", err)
		log.Printf("discordbot.members: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(club.BuildMembersOutput(members)))
	if broadcastRequested(opts) {
		resp.Data.Flags = 0
	}

	return resp
}

// groupConfig builds the grouping configuration from the group options.
func groupConfig(
	opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (grouping.Config, error) {

	cfg := grouping.DefaultConfig()
	if opt, ok := opts["mode"]; ok {
		mode, err := grouping.ParseMode(opt.StringValue())
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if opt, ok := opts["size"]; ok {
		cfg.GroupSize = int(opt.IntValue())
	}
	if opt, ok := opts["separate"]; ok {
		cfg.SeparateGender = opt.BoolValue()
	}
	return cfg, cfg.Validate()
}

func golfGroupCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := subOptions(inter)
	opt, ok := opts["members"]
	if !ok {
		resp.Data.Content = "Please provide member IDs, e.g. 1,2,3,4."
		log.Printf("discordbot.group: %v", resp.Data.Content)
		return resp
	}
	ids, err := internal.ParseIDs(opt.StringValue())
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Please provide member IDs, e.g. 1,2,3,4: %v",
			err)
		return resp
	}
	cfg, err := groupConfig(opts)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Invalid grouping options: %v", err)
		return resp
	}

	res, err := clubAPI.previewGroups(ctx, ids, cfg)
	if err != nil {
		resp.Data.Content = errorContent("form groups", err)
		log.Printf("discordbot.group: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(club.BuildGroupsOutput(res.Groups)))
	if broadcastRequested(opts) {
		resp.Data.Flags = 0
	}

	return resp
}

func golfSchedulesCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := subOptions(inter)
	days := int64(defaultScheduleDays)
	if opt, ok := opts["days"]; ok {
		days = opt.IntValue()
	}
	// enforce bounds
	if days <= 0 {
		days = defaultScheduleDays
	} else if days > maxScheduleDays {
		days = maxScheduleDays
	}

	scheds, err := clubAPI.getSchedules(ctx)
	if err != nil {
		resp.Data.Content = errorContent("list schedules", err)
		log.Printf("discordbot.schedules: %v", resp.Data.Content)
		return resp
	}

	today := time.Now().Truncate(24 * time.Hour)
	upcoming := upcomingSchedules(scheds, today, today.AddDate(0, 0, int(days)))
	if len(upcoming) == 0 {
		resp.Data.Content = fmt.Sprintf("No tee times found in the next %d days.",
			days)
		return resp
	}

	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(club.BuildSchedulesOutput(upcoming)))
	if broadcastRequested(opts) {
		resp.Data.Flags = 0
	}

	return resp
}

// upcomingSchedules returns the schedules dated within [start, end], in tee
// time order.
func upcomingSchedules(scheds []club.Schedule, start time.Time,
	end time.Time) []club.Schedule {

	var out []club.Schedule
	for _, s := range scheds {
		d, err := internal.ParseDateOrZero(s.Date)
		if err != nil || d.IsZero() {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, s)
	}
	club.SortSchedules(out)
	return out
}

func golfStatsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := subOptions(inter)
	opt, ok := opts["memberid"]
	if !ok {
		resp.Data.Content = "Please provide a member ID."
		log.Printf("discordbot.stats: %v", resp.Data.Content)
		return resp
	}
	memberID := opt.IntValue()

	m, err := clubAPI.getMember(ctx, memberID)
	if err != nil {
		resp.Data.Content = errorContent(fmt.Sprintf("fetch member %d", memberID),
			err)
		log.Printf("discordbot.stats: %v", resp.Data.Content)
		return resp
	}
	stats, err := clubAPI.getMemberStats(ctx, memberID)
	if err != nil {
		resp.Data.Content = errorContent(fmt.Sprintf("fetch stats for %d",
			memberID), err)
		log.Printf("discordbot.stats: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(club.BuildStatsOutput(m.Name, stats)))
	if broadcastRequested(opts) {
		resp.Data.Flags = 0
	}

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
