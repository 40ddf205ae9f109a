// Package common contains constants and helpers shared by client packages.
package common

// SessionSlotKey is the metadata key holding the serialized current user.
const SessionSlotKey = "ishara_user"
