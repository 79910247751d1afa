package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/ttgamma/gemportal/core"
	"github.com/ttgamma/gemportal/core/committee"
	"github.com/ttgamma/gemportal/core/event"
	"github.com/ttgamma/gemportal/core/gem"
	"github.com/ttgamma/gemportal/core/member"
	emailsvc "github.com/ttgamma/gemportal/services/email"
	dummydb "github.com/ttgamma/gemportal/storage/database/dummy"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

// testLogger satisfies core.Logger without reporting anywhere.
type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

type testFixture struct {
	server Server
	admin  member.Member
	m1     member.Member
	m2     member.Member
}

func setupServer(t *testing.T) testFixture {
	core.Conf.Debug = false
	core.Conf.TestMode = true

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setupServer() failed: %v", err)
	}
	members := dummydb.NewMemberRepository(db)
	committees := dummydb.NewCommitteeRepository(db)
	events := dummydb.NewEventRepository(db)
	grades := dummydb.NewGradeRepository(db)

	admin := members.AddMember(member.Member{
		RollNo: "001", FirstName: "Ama", LastName: "Owusu", Email: "ama@test.cd",
		Status: member.StatusActive, Role: member.RoleAdmin,
	})
	m1 := members.AddMember(member.Member{
		RollNo: "042", FirstName: "Kofi", LastName: "Mensah", Email: "kofi@test.cd",
		Status: member.StatusActive, Role: member.RoleMember,
	})
	m2 := members.AddMember(member.Member{
		RollNo: "043", FirstName: "Yaw", LastName: "Asante", Email: "yaw@test.cd",
		Status: member.StatusActive, Role: member.RoleMember,
	})

	cmt := committees.AddCommittee(committee.Committee{Name: "Service", MemberIDs: []string{m1.ID}})

	start := time.Date(2025, time.March, 3, 19, 0, 0, 0, time.UTC)
	events.AddEvent(event.Event{
		Type: event.TypeChapter, Status: event.StatusCompleted, StartAt: start,
		Attendance: []event.Attendance{{Member: event.MemberRef{ID: m1.ID}}},
	})
	events.AddEvent(event.Event{
		Type: event.TypeMeeting, Status: event.StatusCompleted, StartAt: start.AddDate(0, 0, 2),
		CommitteeID: null.StringFrom(cmt.ID),
		Attendance:  []event.Attendance{{Member: event.MemberRef{ID: m1.ID}}},
	})

	svc := gem.NewService(
		core.Conf.Gem,
		members, committees, events, grades,
		emailsvc.NewConsoleServiceMock(),
	)
	server := NewServer(&Options{
		Address:        "localhost:0",
		DisableReqLogs: true,
		Logger:         testLogger{},
		GemSvc:         svc,
	})
	return testFixture{server: server, admin: admin, m1: m1, m2: m2}
}

func getToken(t *testing.T, mbr member.Member) string {
	token, err := GenerateToken(GetMemberClaims(mbr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
