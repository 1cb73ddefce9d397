package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ketan-2905/classbunk/config"
	"github.com/ketan-2905/classbunk/internal/schedule"
	"github.com/ketan-2905/classbunk/internal/stats"
	"github.com/ketan-2905/classbunk/models"
)

// Handler carries the dependencies of every API handler. Constructed once in
// main; there is no package-level state.
type Handler struct {
	db       *gorm.DB
	rdb      *redis.Client
	cfg      *config.Config
	schedule *schedule.Service
}

func New(db *gorm.DB, rdb *redis.Client, cfg *config.Config, svc *schedule.Service) *Handler {
	return &Handler{db: db, rdb: rdb, cfg: cfg, schedule: svc}
}

// currentStudentID reads the student id the auth middleware stored on the
// context. Routes using it must sit behind the middleware.
func currentStudentID(c *gin.Context) uint {
	if v, ok := c.Get("student_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// parseAsOf resolves the "as of" date of a request: an explicit ?date=
// parameter (the client's local day) or today, normalized to UTC midnight.
func parseAsOf(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return schedule.NormalizeUTC(time.Now()), true
	}
	d, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// attendanceRows loads the student's full attendance history flattened with
// instance dates and template subjects. Rows whose instance or template is
// gone are logged and skipped; one bad row must not abort the aggregation.
func (h *Handler) attendanceRows(studentID uint) ([]stats.AttendanceRow, error) {
	var records []models.Attendance
	err := h.db.
		Preload("LectureInstance.LectureTemplate").
		Where("student_id = ?", studentID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	rows := make([]stats.AttendanceRow, 0, len(records))
	for _, a := range records {
		if a.LectureInstance == nil || a.LectureInstance.LectureTemplate == nil {
			slog.Warn("Attendance row references a missing instance or template, skipping",
				"attendance_id", a.ID, "instance_id", a.LectureInstanceID)
			continue
		}
		tmpl := a.LectureInstance.LectureTemplate
		rows = append(rows, stats.AttendanceRow{
			AttendanceID: a.ID,
			InstanceID:   a.LectureInstanceID,
			Date:         a.LectureInstance.Date,
			Subject:      tmpl.Subject,
			Type:         tmpl.LectureType,
			StartTime:    tmpl.StartTime,
			EndTime:      tmpl.EndTime,
			Room:         tmpl.Room,
			Faculty:      tmpl.Faculty,
			Attended:     a.Attended,
			IsIgnored:    a.IsIgnored,
			IsExtra:      a.IsExtra,
		})
	}
	return rows, nil
}
