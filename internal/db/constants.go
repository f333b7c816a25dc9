package db

// defaultSessionLimit caps GetRecentSessions when callers pass a non-positive limit.
const defaultSessionLimit = 50
