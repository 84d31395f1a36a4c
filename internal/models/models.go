package models

import "time"

type AccountType string

const (
	AccountGeneral  AccountType = "general"
	AccountBusiness AccountType = "business"
)

type CircleType string

const (
	CirclePublic  CircleType = "public"
	CirclePrivate CircleType = "private"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportDismissed ReportStatus = "dismissed"
)

// Place is a loosely filled location record. Users carry a city, media and
// events a name, business locations an address.
type Place struct {
	Name    string  `json:"name,omitempty"`
	City    string  `json:"city,omitempty"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

type User struct {
	UserID       string      `json:"user_id"`
	FullName     string      `json:"full_name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"password_hash,omitempty"`
	AccountType  AccountType `json:"account_type"`
	Verified     bool        `json:"verified"`
	JoinedDate   time.Time   `json:"joined_date"`
	Interests    []string    `json:"interests"`
	Location     Place       `json:"location"`
	ProfilePic   string      `json:"profile_pic,omitempty"`
}

// Public returns a copy safe to hand to clients.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

type Business struct {
	BusinessID   string    `json:"business_id"`
	OwnerID      string    `json:"owner_id"`
	BusinessName string    `json:"business_name"`
	Category     string    `json:"category"`
	Verified     bool      `json:"verified"`
	Locations    []Place   `json:"locations"`
	CreatedAt    time.Time `json:"created_at"`
}

type Circle struct {
	CircleID      string     `json:"circle_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Type          CircleType `json:"type"`
	Creator       string     `json:"creator"`
	Members       []string   `json:"members"`
	Location      *Place     `json:"location,omitempty"`
	Tags          []string   `json:"tags"`
	Events        []string   `json:"events"`
	BusinessOwned bool       `json:"business_owned"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Event struct {
	EventID     string    `json:"event_id"`
	CircleID    string    `json:"circle_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    Place     `json:"location"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM
	Organizer   string    `json:"organizer"`
	Attendees   []string  `json:"attendees"`
	Capacity    int       `json:"capacity"` // 0 means unlimited
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

type Promotion struct {
	PromoID      string    `json:"promo_id"`
	BusinessID   string    `json:"business_id"`
	Offer        string    `json:"offer"`
	Description  string    `json:"description,omitempty"`
	Requirements string    `json:"requirements"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Tags         []string  `json:"tags"`
	ClaimedBy    []string  `json:"claimed_by"`
	CreatedAt    time.Time `json:"created_at"`
}

type Media struct {
	MediaID   string    `json:"media_id"`
	UserID    string    `json:"user_id"`
	FilePath  string    `json:"file_path"`
	Location  Place     `json:"location"`
	Timestamp time.Time `json:"timestamp"`
	CircleID  string    `json:"circle_id,omitempty"`
	Tags      []string  `json:"tags"`
	Reports   []string  `json:"reports"`
}

type Notification struct {
	NotificationID string    `json:"notification_id"`
	Type           string    `json:"type"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	Read           bool      `json:"read"`
	RelatedID      string    `json:"related_id,omitempty"`
}

type Report struct {
	ReportID    string       `json:"report_id"`
	ReporterID  string       `json:"reporter_id"`
	ContentID   string       `json:"content_id"`
	ContentType string       `json:"content_type"`
	Reason      string       `json:"reason"`
	Status      ReportStatus `json:"status"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Collection shapes as persisted on disk.
type (
	Users         map[string]User // keyed by username
	Businesses    map[string]Business
	Circles       map[string]Circle
	Events        map[string]Event
	Promotions    map[string]Promotion
	Notifications map[string][]Notification // keyed by user_id, newest last
	MediaList     []Media
	Reports       []Report
)

// Session identifies the caller of a domain operation.
type Session struct {
	UserID      string      `json:"user_id"`
	Username    string      `json:"username"`
	AccountType AccountType `json:"account_type"`
}

func (s Session) IsBusiness() bool {
	return s.AccountType == AccountBusiness
}
