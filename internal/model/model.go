package model

import "time"

type (
	UserID   int64
	NoteID   int64
	FolderID int64
	TagID    int64
	ShareID  int64

	User struct {
		ID             UserID
		Username       string
		Email          string
		HashedPassword string
		CreatedAt      time.Time
	}

	Folder struct {
		ID        FolderID
		Name      string
		ParentID  *FolderID
		UserID    UserID
		CreatedAt time.Time
	}

	Note struct {
		ID           NoteID
		UserID       UserID
		FolderID     *FolderID
		Title        string
		Content      string
		IsMarkdown   bool
		IsPinned     bool
		IsPublic     bool
		Color        *string
		ImageURL     *string
		ReminderAt   *time.Time
		ReminderSent bool
		CreatedAt    time.Time
		UpdatedAt    time.Time
		DeletedAt    *time.Time
		Tags         []Tag
	}

	Tag struct {
		ID        TagID
		Name      string
		UserID    UserID
		CreatedAt time.Time
	}

	ShareLink struct {
		ID        ShareID
		NoteID    NoteID
		Token     string
		IsPublic  bool
		ExpiresAt *time.Time
		CreatedAt time.Time
	}

	NoteShare struct {
		ID          ShareID
		NoteID      NoteID
		SharedBy    UserID
		SharedWith  UserID
		Status      ShareStatus
		CreatedAt   time.Time
		RespondedAt *time.Time
	}

	// Reminder is a due note joined with its owner, the unit the
	// reminder scanner works on.
	Reminder struct {
		NoteID     NoteID
		Title      string
		Content    string
		ReminderAt time.Time
		OwnerEmail string
		OwnerName  string
	}
)

type ShareStatus string

const (
	ShareStatusPending  ShareStatus = "pending"
	ShareStatusAccepted ShareStatus = "accepted"
	ShareStatusRejected ShareStatus = "rejected"
)
