package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/scheduler"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type auditStub struct {
	records []models.SchedulingRun
}

func (a *auditStub) Record(run models.SchedulingRun) error {
	a.records = append(a.records, run)
	return nil
}

func (a *auditStub) List(ctx context.Context, query dto.SchedulingRunQuery) ([]models.SchedulingRun, error) {
	return a.records, nil
}

type memoryCache struct {
	entries map[string][]byte
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

type countingSolver struct {
	calls int
	inner *scheduler.Solver
}

func (c *countingSolver) GenerateTimetable(courses []models.Course, instructors []models.Instructor, rooms []models.Room, groups []models.StudentGroup, sections []models.Section) scheduler.Result {
	c.calls++
	return c.inner.GenerateTimetable(courses, instructors, rooms, groups, sections)
}

type panickingSolver struct{}

func (panickingSolver) GenerateTimetable([]models.Course, []models.Instructor, []models.Room, []models.StudentGroup, []models.Section) scheduler.Result {
	panic("boom")
}

func intPtr(v int) *int { return &v }

// lectureRequest leaves durationSlots and the instructor type unset so defaults apply.
func lectureRequest() dto.GenerateTimetableRequest {
	return dto.GenerateTimetableRequest{
		Courses: []dto.CourseRequest{{
			CourseID:   "CS101",
			CourseName: "Intro to Computing",
			Components: []dto.ComponentRequest{{
				ComponentID:             "CS101-L",
				Type:                    "lecture",
				MinCapacity:             intPtr(30),
				InstructorQualification: "cs",
				StudentGroups:           []string{"G1"},
			}},
		}},
		Instructors:   []dto.InstructorRequest{{InstructorID: "P1", Name: "Dr. Hopper", Qualifications: []string{"cs"}}},
		Rooms:         []dto.RoomRequest{{RoomID: "R1", Type: "lecture", Capacity: 40}},
		StudentGroups: []dto.StudentGroupRequest{{GroupID: "G1", Sections: []string{"S1"}}},
		Sections:      []dto.SectionRequest{{SectionID: "S1", GroupID: "G1", StudentCount: 30, AssignedCourses: []string{"CS101"}}},
	}
}

func newTimetableServiceFixture(solver timetableSolver, cache *CacheService, audit RunAuditor, cfg TimetableServiceConfig) *TimetableService {
	return NewTimetableService(solver, cache, audit, nil, nil, zap.NewNop(), cfg)
}

func TestTimetableServiceGenerateSuccess(t *testing.T) {
	audit := &auditStub{}
	svc := newTimetableServiceFixture(nil, nil, audit, TimetableServiceConfig{})

	run, err := svc.Generate(context.Background(), lectureRequest())

	require.NoError(t, err)
	resp := run.Response
	require.True(t, resp.Success)
	assert.Equal(t, scheduler.MessageGenerated, resp.Message)
	assert.NotEmpty(t, resp.RunID)
	require.Len(t, resp.Sections, 1)
	require.Len(t, resp.Sections[0].Schedule, 1)

	entry := resp.Sections[0].Schedule[0]
	assert.Equal(t, dto.SessionEntry{
		SlotIndex:    10,
		CourseID:     "CS101",
		ComponentID:  "CS101-L",
		Type:         "lecture",
		RoomID:       "R1",
		InstructorID: "P1",
		Duration:     1,
		StudentCount: 30,
		Day:          "Monday",
		Period:       3,
		StartTime:    "10:45",
		EndTime:      "11:30",
	}, entry)
	assert.Equal(t, 1, resp.Sections[0].Year)
	assert.Equal(t, &dto.TimetableStatistics{TotalComponents: 1, ScheduledComponents: 1, CompletionRate: "1/1"}, resp.Statistics)

	require.Len(t, audit.records, 1)
	assert.Equal(t, models.SchedulingRunSucceeded, audit.records[0].Outcome)
	assert.Equal(t, resp.RunID, audit.records[0].ID)
	assert.Len(t, audit.records[0].RequestHash, 64)
}

func TestTimetableServiceGenerateRejectedInput(t *testing.T) {
	audit := &auditStub{}
	svc := newTimetableServiceFixture(nil, nil, audit, TimetableServiceConfig{})
	req := lectureRequest()
	req.Rooms = nil

	run, err := svc.Generate(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, run.Response.Success)
	assert.False(t, run.Fault)
	assert.Equal(t, scheduler.MessageValidationFailed, run.Response.Message)
	assert.Equal(t, []string{"No rooms provided"}, run.Response.Errors)
	assert.Nil(t, run.Response.Statistics)
	assert.Empty(t, run.Response.Sections)
	require.Len(t, audit.records, 1)
	assert.Equal(t, models.SchedulingRunRejected, audit.records[0].Outcome)
}

func TestTimetableServiceGenerateFault(t *testing.T) {
	audit := &auditStub{}
	svc := newTimetableServiceFixture(panickingSolver{}, nil, audit, TimetableServiceConfig{})

	run, err := svc.Generate(context.Background(), lectureRequest())

	require.NoError(t, err)
	assert.True(t, run.Fault)
	assert.False(t, run.Response.Success)
	assert.Equal(t, []string{"Unexpected error: boom"}, run.Response.Errors)
	require.Len(t, audit.records, 1)
	assert.Equal(t, models.SchedulingRunFaulted, audit.records[0].Outcome)
}

func TestTimetableServiceGenerateRejectsPayload(t *testing.T) {
	svc := newTimetableServiceFixture(nil, nil, nil, TimetableServiceConfig{})
	req := lectureRequest()
	req.Courses[0].CourseID = ""

	_, err := svc.Generate(context.Background(), req)

	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestTimetableServiceGenerateRejectsZeroDuration(t *testing.T) {
	svc := newTimetableServiceFixture(nil, nil, nil, TimetableServiceConfig{})
	req := lectureRequest()
	req.Courses[0].Components[0].DurationSlots = intPtr(0)

	_, err := svc.Generate(context.Background(), req)

	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestTimetableServiceGenerateEnforcesComponentLimit(t *testing.T) {
	svc := newTimetableServiceFixture(nil, nil, nil, TimetableServiceConfig{MaxComponents: 1})
	req := lectureRequest()
	req.Courses[0].Components = append(req.Courses[0].Components, dto.ComponentRequest{ComponentID: "CS101-T", Type: "tutorial"})

	_, err := svc.Generate(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "request has 2 components, limit is 1")
}

func TestTimetableServiceGenerateUsesCache(t *testing.T) {
	solver := &countingSolver{inner: scheduler.New(zap.NewNop())}
	cache := NewCacheService(&memoryCache{entries: map[string][]byte{}}, nil, time.Minute, zap.NewNop(), true)
	svc := newTimetableServiceFixture(solver, cache, nil, TimetableServiceConfig{})

	first, err := svc.Generate(context.Background(), lectureRequest())
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), lectureRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, solver.calls)
	assert.False(t, first.CacheHit)
	assert.True(t, second.CacheHit)
	assert.NotEqual(t, first.Response.RunID, second.Response.RunID)
	assert.Equal(t, first.Response.Sections, second.Response.Sections)
}

func TestTimetableServiceFaultIsNotCached(t *testing.T) {
	entries := map[string][]byte{}
	cache := NewCacheService(&memoryCache{entries: entries}, nil, time.Minute, zap.NewNop(), true)
	svc := newTimetableServiceFixture(panickingSolver{}, cache, nil, TimetableServiceConfig{})

	_, err := svc.Generate(context.Background(), lectureRequest())

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTimetableServiceExportCSV(t *testing.T) {
	svc := newTimetableServiceFixture(nil, nil, nil, TimetableServiceConfig{})

	file, run, err := svc.Export(context.Background(), lectureRequest(), dto.ExportCSV)

	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "timetable-"+run.Response.RunID+".csv", file.Filename)
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "sectionID,groupID,day,period"))
	assert.Equal(t, "S1,G1,Monday,3,10:45,11:30,CS101,CS101-L,lecture,R1,P1,1,30,10", lines[1])
}

func TestTimetableServiceExportPDF(t *testing.T) {
	svc := newTimetableServiceFixture(nil, nil, nil, TimetableServiceConfig{})

	file, _, err := svc.Export(context.Background(), lectureRequest(), dto.ExportPDF)

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestTimetableServiceExportFailedRun(t *testing.T) {
	svc := newTimetableServiceFixture(nil, nil, nil, TimetableServiceConfig{})
	req := lectureRequest()
	req.Sections = nil

	file, run, err := svc.Export(context.Background(), req, dto.ExportCSV)

	require.NoError(t, err)
	assert.Nil(t, file)
	assert.False(t, run.Response.Success)
}

func TestTimetableServiceExportUnsupportedFormat(t *testing.T) {
	svc := newTimetableServiceFixture(nil, nil, nil, TimetableServiceConfig{})

	_, _, err := svc.Export(context.Background(), lectureRequest(), dto.ExportFormat("xlsx"))

	assert.True(t, errors.Is(err, appErrors.ErrUnsupportedFormat))
}

func TestTimetableServiceStats(t *testing.T) {
	svc := newTimetableServiceFixture(nil, nil, nil, TimetableServiceConfig{})

	stats, err := svc.Stats(context.Background(), lectureRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Courses)
	assert.Equal(t, 1, stats.Components)
	assert.Equal(t, map[string]int{"lecture": 1}, stats.ComponentTypes)
	assert.Equal(t, map[string]int{"professor": 1}, stats.InstructorRoles)
	assert.Equal(t, map[string]int{"1": 1}, stats.SectionsByYear)
	assert.Equal(t, 1, stats.RequiredSlots)
	assert.Equal(t, 40, stats.AvailableSlots)
}

func TestTimetableServiceListRuns(t *testing.T) {
	disabled := newTimetableServiceFixture(nil, nil, nil, TimetableServiceConfig{})
	_, err := disabled.ListRuns(context.Background(), dto.SchedulingRunQuery{})
	assert.True(t, errors.Is(err, appErrors.ErrAuditDisabled))

	audit := &auditStub{records: []models.SchedulingRun{{ID: "run-1"}}}
	svc := newTimetableServiceFixture(nil, nil, audit, TimetableServiceConfig{})

	_, err = svc.ListRuns(context.Background(), dto.SchedulingRunQuery{Outcome: "UNKNOWN"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	runs, err := svc.ListRuns(context.Background(), dto.SchedulingRunQuery{Outcome: "SUCCEEDED", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
