/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/grouping"
)

func main() {
	src, cfg := parseArgs()
	ctx := context.Background()
	data, err := load(ctx, newRosterClient(ctx), src)
	if err != nil {
		log.Fatalf("%v: Failed to retrieve %v: %v", os.Args[0], src, err)
	}
	roster, err := parseRoster(data)
	if err != nil {
		log.Fatalf("%v: Failed to read roster from %v: %v", os.Args[0], src, err)
	}
	groups, err := grouping.FormGroups(roster, cfg)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	fmt.Printf("Tee Groups (%v):\n\n", cfg.Mode)
	fmt.Print(club.BuildGroupsOutput(groups))
}
