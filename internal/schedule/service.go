package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ketan-2905/classbunk/config"
	"github.com/ketan-2905/classbunk/models"
)

// Service loads calendar, template and elective data and keeps a student's
// lecture instances and attendance rows in sync with their resolved schedule.
type Service struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

// Holidays resolves the configured academic year's holiday set. A missing
// calendar document degrades to an empty set rather than failing the request.
func (s *Service) Holidays() (HolidaySet, error) {
	var calendar models.AcademicCalendar
	err := s.db.Where("year = ?", s.cfg.CalendarYear).First(&calendar).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Info("No academic calendar found, assuming no holidays", "year", s.cfg.CalendarYear)
		return make(HolidaySet), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load academic calendar: %w", err)
	}

	var doc models.CalendarDocument
	if err := json.Unmarshal(calendar.Data, &doc); err != nil {
		return nil, fmt.Errorf("parse academic calendar %q: %w", s.cfg.CalendarYear, err)
	}
	return ResolveHolidays(&doc), nil
}

// StudentTemplates returns the templates the student must attend, after
// elective and batch resolution.
func (s *Service) StudentTemplates(student *models.Student) ([]models.LectureTemplate, error) {
	var templates []models.LectureTemplate
	err := s.db.
		Where("branch_id = ? AND division_id = ? AND semester = ? AND is_active = ?",
			student.BranchID, student.DivisionID, student.Semester, true).
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("load lecture templates: %w", err)
	}

	var electives []models.Elective
	err = s.db.
		Where("branch_id = ? AND semester = ?", student.BranchID, student.Semester).
		Find(&electives).Error
	if err != nil {
		return nil, fmt.Errorf("load electives: %w", err)
	}

	return ResolveTemplates(templates, ElectiveNameSet(electives), student), nil
}

// Sync projects the student's resolved templates from semester start to
// asOf + lookahead and backfills lecture instances plus default attendance
// rows. Every write is insert-if-absent, so the whole sync is idempotent and
// safe to retry; a full re-run from semester start also backfills anything
// missed after an elective change.
func (s *Service) Sync(studentID uint, asOf time.Time) error {
	var student models.Student
	if err := s.db.First(&student, studentID).Error; err != nil {
		return fmt.Errorf("load student %d: %w", studentID, err)
	}

	holidays, err := s.Holidays()
	if err != nil {
		return err
	}

	resolved, err := s.StudentTemplates(&student)
	if err != nil {
		return err
	}

	r, err := NewDateRange(s.cfg.SemesterStart, NormalizeUTC(asOf).AddDate(0, 0, s.cfg.LookaheadDays))
	if err != nil {
		return fmt.Errorf("sync range: %w", err)
	}

	occurrences := Project(resolved, r, holidays)
	slog.Debug("Sync projection",
		"student_id", studentID, "templates", len(resolved), "occurrences", len(occurrences))
	if len(occurrences) == 0 {
		return nil
	}

	instances := make([]models.LectureInstance, 0, len(occurrences))
	for _, o := range occurrences {
		instances = append(instances, models.LectureInstance{
			LectureTemplateID: o.Template.ID,
			Date:              o.Date,
			Status:            models.LectureScheduled,
		})
	}

	// Set-based insert-if-absent: duplicate (template, date) pairs are
	// silently ignored by the unique index.
	err = s.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&instances, 500).Error
	if err != nil {
		return fmt.Errorf("create lecture instances: %w", err)
	}

	templateIDs := make([]uint, 0, len(resolved))
	for _, t := range resolved {
		templateIDs = append(templateIDs, t.ID)
	}

	var instanceIDs []uint
	err = s.db.Model(&models.LectureInstance{}).
		Where("lecture_template_id IN ? AND date BETWEEN ? AND ?", templateIDs, r.Start(), r.End()).
		Pluck("id", &instanceIDs).Error
	if err != nil {
		return fmt.Errorf("load instance ids: %w", err)
	}
	if len(instanceIDs) == 0 {
		return nil
	}

	rows := make([]models.Attendance, 0, len(instanceIDs))
	for _, id := range instanceIDs {
		rows = append(rows, models.Attendance{
			StudentID:         studentID,
			LectureInstanceID: id,
			Attended:          s.cfg.DefaultAttended,
		})
	}

	err = s.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, 500).Error
	if err != nil {
		return fmt.Errorf("create attendance rows: %w", err)
	}

	slog.Info("Schedule synced", "student_id", studentID, "instances", len(instanceIDs))
	return nil
}

// PruneDuplicateElectives removes instances created before batch resolution
// existed: when a chosen elective has a section for the student's own batch,
// instances generated from the other batches' templates are deleted along
// with the student's attendance rows on them. The deletes are unscoped hard
// deletes: a soft-deleted row would keep occupying the (template, date) and
// (student, instance) unique indexes, so a later Sync's insert-if-absent
// would no-op forever and the instance could never be recreated for a
// student who legitimately needs it. Running it again once clean is a no-op.
func (s *Service) PruneDuplicateElectives(student *models.Student) (removedAttendances, removedInstances int64, err error) {
	var electives []models.Elective
	err = s.db.
		Where("branch_id = ? AND semester = ?", student.BranchID, student.Semester).
		Find(&electives).Error
	if err != nil {
		return 0, 0, fmt.Errorf("load electives: %w", err)
	}

	var templates []models.LectureTemplate
	err = s.db.
		Where("branch_id = ? AND division_id = ? AND semester = ? AND is_active = ?",
			student.BranchID, student.DivisionID, student.Semester, true).
		Find(&templates).Error
	if err != nil {
		return 0, 0, fmt.Errorf("load lecture templates: %w", err)
	}

	staleIDs := StaleElectiveTemplates(templates, ElectiveNameSet(electives), student)
	if len(staleIDs) == 0 {
		return 0, 0, nil
	}

	instanceIDs := s.db.Model(&models.LectureInstance{}).
		Select("id").
		Where("lecture_template_id IN ?", staleIDs)

	attendances := s.db.Unscoped().
		Where("student_id = ? AND lecture_instance_id IN (?)", student.ID, instanceIDs).
		Delete(&models.Attendance{})
	if attendances.Error != nil {
		return 0, 0, fmt.Errorf("delete stale attendance rows: %w", attendances.Error)
	}

	// Instances are shared across students; only drop ones nobody references.
	instances := s.db.Unscoped().
		Where("lecture_template_id IN ?", staleIDs).
		Where("NOT EXISTS (SELECT 1 FROM attendances WHERE attendances.lecture_instance_id = lecture_instances.id AND attendances.deleted_at IS NULL)").
		Delete(&models.LectureInstance{})
	if instances.Error != nil {
		return 0, 0, fmt.Errorf("delete stale lecture instances: %w", instances.Error)
	}

	slog.Info("Duplicate elective cleanup finished",
		"student_id", student.ID,
		"stale_templates", len(staleIDs),
		"removed_attendances", attendances.RowsAffected,
		"removed_instances", instances.RowsAffected)
	return attendances.RowsAffected, instances.RowsAffected, nil
}

// SyncAll re-syncs every student's schedule. Run nightly; each student's sync
// is independent, so one failure does not stop the rest.
func (s *Service) SyncAll() {
	var studentIDs []uint
	if err := s.db.Model(&models.Student{}).Pluck("id", &studentIDs).Error; err != nil {
		slog.Error("SyncAll: failed to list students", "error", err)
		return
	}

	asOf := time.Now().UTC()
	for _, id := range studentIDs {
		if err := s.Sync(id, asOf); err != nil {
			slog.Error("SyncAll: student sync failed", "student_id", id, "error", err)
		}
	}
	slog.Info("Nightly schedule sync finished", "students", len(studentIDs))
}
