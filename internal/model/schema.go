package model

import (
	"database/sql"
	"time"
)

// The structs below describe the backend's application schema. The init
// command feeds them to gorm's AutoMigrate; nothing else in this tool
// reads or writes application rows.

// User is an account record.
type User struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement"`
	Email              string         `gorm:"size:255;uniqueIndex;not null"`
	Username           string         `gorm:"size:100;uniqueIndex;not null"`
	HashedPassword     string         `gorm:"size:255;not null"`
	FullName           sql.NullString `gorm:"size:255"`
	SoftwareBackground sql.NullString `gorm:"size:50"`
	HardwareBackground sql.NullString `gorm:"size:50"`
	IsActive           bool           `gorm:"default:true"`
	IsAdmin            bool           `gorm:"default:false"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
	LastLogin          sql.NullTime

	Sessions    []UserSession   `gorm:"constraint:OnDelete:CASCADE"`
	Progress    []UserProgress  `gorm:"constraint:OnDelete:CASCADE"`
	Bookmarks   []Bookmark      `gorm:"constraint:OnDelete:CASCADE"`
	ChatHistory []ChatHistory   `gorm:"constraint:OnDelete:CASCADE"`
	Preferences *UserPreference `gorm:"constraint:OnDelete:CASCADE"`
}

// UserSession tracks issued tokens for session management.
type UserSession struct {
	ID         uint           `gorm:"primaryKey;autoIncrement"`
	UserID     uint           `gorm:"not null;index"`
	Token      string         `gorm:"size:500;uniqueIndex;not null"`
	DeviceInfo sql.NullString `gorm:"size:255"`
	IPAddress  sql.NullString `gorm:"size:45"`
	IsActive   bool           `gorm:"default:true"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	ExpiresAt  time.Time      `gorm:"not null"`
}

// UserProgress tracks per-chapter reading progress.
type UserProgress struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement"`
	UserID             uint           `gorm:"not null;index"`
	ChapterID          string         `gorm:"size:100;not null"`
	SectionID          sql.NullString `gorm:"size:100"`
	Status             string         `gorm:"size:20;default:not_started"`
	ProgressPercentage float64        `gorm:"default:0"`
	TimeSpentSeconds   int            `gorm:"default:0"`
	CompletedAt        sql.NullTime
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

// Bookmark is a user-saved section reference.
type Bookmark struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"`
	UserID    uint           `gorm:"not null;index"`
	ChapterID string         `gorm:"size:100;not null"`
	SectionID sql.NullString `gorm:"size:100"`
	Title     string         `gorm:"size:255;not null"`
	URL       string         `gorm:"size:500;not null"`
	Notes     sql.NullString `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

// ChatHistory stores chatbot exchanges. UserID is nullable because
// anonymous sessions are allowed.
type ChatHistory struct {
	ID         uint           `gorm:"primaryKey;autoIncrement"`
	UserID     sql.NullInt64  `gorm:"index"`
	SessionID  string         `gorm:"size:100;index;not null"`
	Role       string         `gorm:"size:20;not null"`
	Message    string         `gorm:"type:text;not null"`
	Context    sql.NullString `gorm:"type:text"`
	ModelUsed  sql.NullString `gorm:"size:50"`
	TokensUsed sql.NullInt64
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// UserPreference holds per-user settings; one row per user.
type UserPreference struct {
	ID                   uint           `gorm:"primaryKey;autoIncrement"`
	UserID               uint           `gorm:"uniqueIndex;not null"`
	Language             string         `gorm:"size:10;default:en"`
	Theme                string         `gorm:"size:20;default:light"`
	NotificationsEnabled bool           `gorm:"default:true"`
	EmailNotifications   bool           `gorm:"default:false"`
	AutoTranslate        bool           `gorm:"default:false"`
	PreferredDifficulty  string         `gorm:"size:20;default:intermediate"`
	SettingsJSON         sql.NullString `gorm:"type:text"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
}

// Analytics is an append-only usage event log.
type Analytics struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"`
	EventType string         `gorm:"size:50;not null;index"`
	UserID    sql.NullInt64  `gorm:"index"`
	SessionID sql.NullString `gorm:"size:100"`
	PageURL   sql.NullString `gorm:"size:500"`
	EventData sql.NullString `gorm:"type:text"`
	IPAddress sql.NullString `gorm:"size:45"`
	UserAgent sql.NullString `gorm:"size:500"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

// TranslationCache caches translated content keyed by content hash.
type TranslationCache struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	ContentHash       string    `gorm:"size:255;uniqueIndex;not null"`
	SourceLang        string    `gorm:"size:10;not null"`
	TargetLang        string    `gorm:"size:10;not null"`
	TranslatedContent string    `gorm:"type:text;not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

// SchemaModels returns every schema struct in migration order. Parents
// come before children so foreign key constraints can be created.
func SchemaModels() []interface{} {
	return []interface{}{
		&User{},
		&UserSession{},
		&UserProgress{},
		&Bookmark{},
		&ChatHistory{},
		&UserPreference{},
		&Analytics{},
		&TranslationCache{},
	}
}

// SchemaTableNames returns the table names AutoMigrate will create,
// in the same order as SchemaModels.
func SchemaTableNames() []string {
	return []string{
		"users",
		"user_sessions",
		"user_progress",
		"bookmarks",
		"chat_history",
		"user_preferences",
		"analytics",
		"translation_cache",
	}
}

// TableName overrides gorm's pluralization to keep the original
// schema's table names.
func (UserProgress) TableName() string { return "user_progress" }

// TableName keeps the original schema's table name.
func (ChatHistory) TableName() string { return "chat_history" }

// TableName keeps the original schema's table name.
func (Analytics) TableName() string { return "analytics" }

// TableName keeps the original schema's table name.
func (TranslationCache) TableName() string { return "translation_cache" }
