// Package models defines the persisted domain entities: List, Item and
// ItemImage, plus the normalization rules used for duplicate detection.
package models
