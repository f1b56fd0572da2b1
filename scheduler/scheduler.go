package scheduler

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/NasiChan/lab2life-webapp/models"
	"github.com/NasiChan/lab2life-webapp/services"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// BlockTimes are the fixed trigger times for the four time blocks.
var BlockTimes = map[string]string{
	models.TimeBlockMorning: "06:00",
	models.TimeBlockMidday:  "11:00",
	models.TimeBlockEvening: "15:00",
	models.TimeBlockBedtime: "20:00",
}

// firedRegistry tracks which notifications already went out today. It is
// in-memory only: a process restart resets it and the next matching tick
// fires again.
type firedRegistry struct {
	mu   sync.Mutex
	day  string
	keys map[string]struct{}
}

func newFiredRegistry() *firedRegistry {
	return &firedRegistry{keys: make(map[string]struct{})}
}

// fire reports whether this is the first firing of key today, marking it.
func (r *firedRegistry) fire(day, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.day != day {
		r.day = day
		r.keys = make(map[string]struct{})
	}
	if _, ok := r.keys[key]; ok {
		return false
	}
	r.keys[key] = struct{}{}
	return true
}

func (r *firedRegistry) clear(day, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.day == day {
		delete(r.keys, key)
	}
}

// Start registers the periodic jobs: a 30-second notification tick and a
// nightly dose generation run.
func Start(db *gorm.DB) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	reg := newFiredRegistry()

	_, err = s.NewJob(
		gocron.DurationJob(30*time.Second),
		gocron.NewTask(func() {
			Tick(db, reg, time.Now())
		}),
	)
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.CronJob("5 0 * * *", false),
		gocron.NewTask(func() {
			GenerateDailyDoses(db, time.Now())
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

// Tick compares the wall clock against enabled reminders, time-block trigger
// times and expired snoozes, emitting each notification at most once per
// calendar day.
func Tick(db *gorm.DB, reg *firedRegistry, now time.Time) {
	day := now.Format("2006-01-02")
	hhmm := now.Format("15:04")
	weekday := now.Weekday().String()

	var reminders []models.Reminder
	if err := db.Where("enabled = ?", true).Find(&reminders).Error; err != nil {
		log.Println("scheduler: reminder query failed:", err)
		return
	}
	for _, rem := range reminders {
		if rem.Time != hhmm || !dayMatches(rem.Days, weekday) {
			continue
		}
		key := fmt.Sprintf("reminder-%d", rem.ID)
		if reg.fire(day, key) {
			services.EmitNotification(rem.UserID, "reminder", rem.Title,
				fmt.Sprintf("Reminder: %s (%s)", rem.Title, rem.Time))
		}
	}

	for block, trigger := range BlockTimes {
		if trigger != hhmm {
			continue
		}
		for _, uid := range usersWithPillsInBlock(db, block) {
			key := fmt.Sprintf("block-%s-%d", block, uid)
			if reg.fire(day, key) {
				services.EmitNotification(uid, "time_block",
					fmt.Sprintf("%s pills", block),
					fmt.Sprintf("Time for your %s pills", block))
			}
		}
	}

	// An expired snooze notifies again and re-arms its time block.
	var snoozed []models.PillDose
	if err := db.Where("status = ? AND snoozed_until IS NOT NULL AND snoozed_until <= ?",
		models.DoseStatusSnoozed, now).Find(&snoozed).Error; err != nil {
		log.Println("scheduler: snooze query failed:", err)
		return
	}
	for _, dose := range snoozed {
		key := fmt.Sprintf("dose-%d", dose.ID)
		if reg.fire(day, key) {
			services.EmitNotification(dose.UserID, "dose",
				"Snoozed dose due",
				fmt.Sprintf("Your snoozed %s dose is due", dose.ScheduledTimeBlock))
			reg.clear(day, fmt.Sprintf("block-%s-%d", dose.ScheduledTimeBlock, dose.UserID))
			// Back to pending: the registry resets at date rollover, so a
			// dose left snoozed would otherwise re-fire every day.
			if err := db.Model(&models.PillDose{}).Where("id = ?", dose.ID).
				Updates(map[string]interface{}{
					"status":        models.DoseStatusPending,
					"snoozed_until": nil,
				}).Error; err != nil {
				log.Println("scheduler: snooze reset failed:", err)
			}
		}
	}
}

// GenerateDailyDoses runs the dose generator for every user that has active
// pills, so the day's doses exist before the first time block fires.
func GenerateDailyDoses(db *gorm.DB, now time.Time) {
	date := now.Format("2006-01-02")
	doseSvc := services.NewDoseService()

	for _, uid := range usersWithActivePills(db) {
		if _, err := doseSvc.Generate(uid, date); err != nil {
			log.Printf("scheduler: dose generation for user %d failed: %v", uid, err)
		}
	}
}

func dayMatches(days []byte, weekday string) bool {
	if len(days) == 0 {
		return true
	}
	var names []string
	if err := json.Unmarshal(days, &names); err != nil || len(names) == 0 {
		return true
	}
	for _, d := range names {
		if d == weekday {
			return true
		}
	}
	return false
}

func usersWithPillsInBlock(db *gorm.DB, block string) []uint {
	seen := make(map[uint]struct{})

	var medUsers []uint
	db.Model(&models.Medication{}).
		Where("active = ? AND time_block = ?", true, block).
		Distinct().Pluck("user_id", &medUsers)
	var suppUsers []uint
	db.Model(&models.Supplement{}).
		Where("active = ? AND time_block = ?", true, block).
		Distinct().Pluck("user_id", &suppUsers)

	var out []uint
	for _, uid := range append(medUsers, suppUsers...) {
		if _, ok := seen[uid]; !ok {
			seen[uid] = struct{}{}
			out = append(out, uid)
		}
	}
	return out
}

func usersWithActivePills(db *gorm.DB) []uint {
	seen := make(map[uint]struct{})

	var medUsers []uint
	db.Model(&models.Medication{}).
		Where("active = ?", true).
		Distinct().Pluck("user_id", &medUsers)
	var suppUsers []uint
	db.Model(&models.Supplement{}).
		Where("active = ?", true).
		Distinct().Pluck("user_id", &suppUsers)

	var out []uint
	for _, uid := range append(medUsers, suppUsers...) {
		if _, ok := seen[uid]; !ok {
			seen[uid] = struct{}{}
			out = append(out, uid)
		}
	}
	return out
}
