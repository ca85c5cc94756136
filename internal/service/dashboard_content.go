package service

import "time"

// SlideInterval 首页轮播自动切换间隔
const SlideInterval = 5 * time.Second

var clinicPhotos = []string{
	"https://images.unsplash.com/photo-1519494026892-80bbd2d6fd0d?w=800&h=500&fit=crop",
	"https://images.unsplash.com/photo-1629909613654-28e377c37b09?w=800&h=500&fit=crop",
	"https://images.unsplash.com/photo-1631217868264-e5b90bb7e133?w=800&h=500&fit=crop",
	"https://images.unsplash.com/photo-1538108149393-fbbd81895907?w=800&h=500&fit=crop",
}

type Announcement struct {
	ID      int    `json:"id"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// 新的在前
var announcements = []Announcement{
	{ID: 1, Date: "2026-02-05", Title: "New Operating Hours", Message: "Starting next week, we will be open on Saturdays from 9 AM to 2 PM for your convenience."},
	{ID: 2, Date: "2026-02-03", Title: "Flu Vaccination Available", Message: "Flu vaccination is now available. Please schedule an appointment to get vaccinated."},
	{ID: 3, Date: "2026-02-01", Title: "New Equipment Installed", Message: "We have installed state-of-the-art diagnostic equipment to provide better healthcare services."},
	{ID: 4, Date: "2026-01-28", Title: "Health Tips", Message: "Remember to stay hydrated and maintain a balanced diet for optimal health."},
}

// Slideshow 轮播状态；下标始终在 [0, len) 内
type Slideshow struct {
	Photos     []string `json:"photos"`
	Current    int      `json:"current"`
	IntervalMs int64    `json:"intervalMs"`
}

func NewSlideshow() Slideshow {
	return Slideshow{
		Photos:     append([]string(nil), clinicPhotos...),
		IntervalMs: SlideInterval.Milliseconds(),
	}
}

func (s Slideshow) Next() Slideshow { return s.Goto(s.Current + 1) }

func (s Slideshow) Prev() Slideshow { return s.Goto(s.Current - 1) }

func (s Slideshow) Goto(i int) Slideshow {
	n := len(s.Photos)
	if n == 0 {
		s.Current = 0
		return s
	}
	s.Current = ((i % n) + n) % n
	return s
}

func Announcements() []Announcement { return append([]Announcement(nil), announcements...) }

type NavItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var userNav = []NavItem{
	{Key: "dashboard", Label: "Dashboard"},
	{Key: "appointments", Label: "Appointments"},
	{Key: "analytics", Label: "Analytics"},
	{Key: "profile", Label: "Profile"},
	{Key: "settings", Label: "Settings"},
}
