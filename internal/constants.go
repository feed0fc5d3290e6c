/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent = "golfclub-teebot/0.4.0 (+https://github.com/mikeb26/golfclub-teebot)"

	// environment variables shared by the commands
	EnvDatabasePath = "GOLFCLUB_DB"
	EnvCacheBucket  = "GOLFCLUB_CACHE_BUCKET"
	EnvCourseDirURL = "GOLFCLUB_COURSE_DIRECTORY"
	EnvScheduleBkt  = "GOLFCLUB_SCHEDULE_BUCKET"

	DefaultDatabasePath = "golfclub.db"
	DefaultPort         = 3000
)
