// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package todo manages to-do items, their listing filters and search.

# Architecture

  - Entity: [Todo], with its author embedded as an [auth.Summary].
  - Creation stamps today's weather from the weather provider and registers
    the author as the first manager of the new item.
  - Listing filters by weather and modification date, newest change first.
  - Search filters by title, author nickname and creation date and reports
    manager and comment counts per item.
*/
package todo

import (
	"time"

	"github.com/taibuivan/taskly/internal/users/auth"
)

// # Domain Entities

// Todo is a to-do item.
type Todo struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Contents  string       `json:"contents"`
	Weather   string       `json:"weather"`
	User      auth.Summary `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"modifiedAt"`
}

// SearchResult is one row of a to-do search.
type SearchResult struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	ManagerCount int    `json:"managerCount"`
	CommentCount int    `json:"commentCount"`
}

// ListFilter narrows [Repository.List]. Zero fields are ignored.
type ListFilter struct {
	Weather      string
	ModifiedFrom *time.Time
	ModifiedTo   *time.Time
}

// SearchFilter narrows [Repository.Search]. Zero fields are ignored and
// non-zero fields are combined with AND.
type SearchFilter struct {
	Title       string
	Nickname    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// # Field Identifiers

const (
	FieldTitle     = "title"
	FieldContents  = "contents"
	FieldWeather   = "weather"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
	FieldNickname  = "nickname"
)

// MaxTitleLength bounds stored titles.
const MaxTitleLength = 255

// Client-facing messages.
const (
	MsgWeatherUnavailable = "날씨 정보를 가져올 수 없습니다."
)
