package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"apexfinance/internal/models"
	"apexfinance/internal/scoring"
	"apexfinance/internal/testutil"
)

var dashboardNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestDashboard(db *gorm.DB) *dashboardService {
	svc := NewDashboardService(db, 7).(*dashboardService)
	svc.nowFunc = func() time.Time { return dashboardNow }
	return svc
}

// seedPersonal creates the personal sample: income 2500, essential spend
// 1050 and discretionary spend 165.
func seedPersonal(t *testing.T, db *gorm.DB) *models.Workspace {
	t.Helper()
	ws := testutil.CreateTestWorkspace(t, db)
	salary := testutil.CreateTestCategoryWithParent(t, db, ws.ID, "Salary", nil)
	housing := testutil.CreateTestCategoryWithParent(t, db, ws.ID, "Housing", nil)
	fun := testutil.CreateTestCategoryWithParent(t, db, ws.ID, "Fun", nil)

	testutil.CreateTestTransactionAt(t, db, ws.ID, salary.ID, "2500", true, dashboardNow.AddDate(0, -1, 0))
	testutil.CreateTestTransactionAt(t, db, ws.ID, housing.ID, "-800", true, dashboardNow.AddDate(0, -1, 1))
	testutil.CreateTestTransactionAt(t, db, ws.ID, housing.ID, "-250", true, dashboardNow.AddDate(0, 0, -10))
	testutil.CreateTestTransactionAt(t, db, ws.ID, fun.ID, "-45", false, dashboardNow.AddDate(0, 0, -1))
	testutil.CreateTestTransactionAt(t, db, ws.ID, fun.ID, "-120", false, dashboardNow.AddDate(0, 0, -3))
	return ws
}

func TestGetScore(t *testing.T) {
	t.Run("personal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestDashboard(db)
		ws := seedPersonal(t, db)

		report, err := svc.GetScore(ws.ID)
		testutil.AssertNoError(t, err)

		if report.Score != 93 {
			t.Errorf("expected score 93, got %d", report.Score)
		}
		if report.Band != scoring.BandHealthy {
			t.Errorf("expected healthy band, got %s", report.Band)
		}
		if !report.Penalty.Equal(decimal.RequireFromString("6.6")) {
			t.Errorf("expected penalty 6.6, got %s", report.Penalty)
		}
		if len(report.Insights) == 0 {
			t.Error("expected insights")
		}
	})

	t.Run("professional", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestDashboard(db)
		ws := testutil.CreateTestProfessionalWorkspace(t, db)
		revenue := testutil.CreateTestCategory(t, db, ws.ID)
		costs := testutil.CreateTestCategory(t, db, ws.ID)

		testutil.CreateTestTransaction(t, db, ws.ID, revenue.ID, "15000", true)
		testutil.CreateTestTransaction(t, db, ws.ID, revenue.ID, "50000", true)
		testutil.CreateTestTransaction(t, db, ws.ID, costs.ID, "-18000", true)
		testutil.CreateTestTransaction(t, db, ws.ID, costs.ID, "-1200", true)
		testutil.CreateTestTransaction(t, db, ws.ID, costs.ID, "-3500", false)

		report, err := svc.GetScore(ws.ID)
		testutil.AssertNoError(t, err)

		if report.Score != 65 {
			t.Errorf("expected score 65, got %d", report.Score)
		}
		if report.Mode != models.WorkspaceModeProfessional {
			t.Errorf("expected professional mode, got %s", report.Mode)
		}
		if report.Band != scoring.BandWatch {
			t.Errorf("expected watch band, got %s", report.Band)
		}
	})

	t.Run("empty_workspace", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestDashboard(db)
		ws := testutil.CreateTestWorkspace(t, db)

		report, err := svc.GetScore(ws.ID)
		testutil.AssertNoError(t, err)
		if report.Score != 100 {
			t.Errorf("expected score 100, got %d", report.Score)
		}
	})

	t.Run("unknown_workspace", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestDashboard(db)

		_, err := svc.GetScore("missing")
		testutil.AssertAppError(t, err, "WORKSPACE_NOT_FOUND")
	})
}

func TestGetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestDashboard(db)
	ws := seedPersonal(t, db)
	testutil.CreateTestGoal(t, db, ws.ID, "1000", "10")

	summary, err := svc.GetSummary(ws.ID)
	testutil.AssertNoError(t, err)

	if !summary.TotalIncome.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("expected income 2500, got %s", summary.TotalIncome)
	}
	if !summary.TotalExpense.Equal(decimal.NewFromInt(1215)) {
		t.Errorf("expected expense 1215, got %s", summary.TotalExpense)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(1285)) {
		t.Errorf("expected balance 1285, got %s", summary.Balance)
	}
	if !summary.WeeklyExpense.Equal(decimal.NewFromInt(165)) {
		t.Errorf("expected weekly expense 165, got %s", summary.WeeklyExpense)
	}
	if summary.Score != 93 {
		t.Errorf("expected score 93, got %d", summary.Score)
	}
	if summary.EssentialRatio != 86 {
		t.Errorf("expected essential ratio 86, got %d", summary.EssentialRatio)
	}
	if summary.GoalCount != 1 {
		t.Errorf("expected 1 goal, got %d", summary.GoalCount)
	}
}

func TestGetCashFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestDashboard(db)
	ws := seedPersonal(t, db)

	points, err := svc.GetCashFlow(ws.ID, 0)
	testutil.AssertNoError(t, err)
	if len(points) != 7 {
		t.Fatalf("expected configured window of 7 days, got %d", len(points))
	}
	if !points[6].Accumulated.Equal(decimal.NewFromInt(-165)) {
		t.Errorf("expected accumulated -165, got %s", points[6].Accumulated)
	}

	points, err = svc.GetCashFlow(ws.ID, 30)
	testutil.AssertNoError(t, err)
	if len(points) != 30 {
		t.Errorf("expected 30 points, got %d", len(points))
	}

	_, err = svc.GetCashFlow(ws.ID, 1000)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestGetMonthlyReportAndDistribution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestDashboard(db)
	ws := seedPersonal(t, db)

	monthly, err := svc.GetMonthlyReport(ws.ID)
	testutil.AssertNoError(t, err)
	if len(monthly.Months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(monthly.Months))
	}
	if monthly.Months[0].Month != "2024-02" {
		t.Errorf("expected February first, got %s", monthly.Months[0].Month)
	}
	if monthly.EssentialRatio != 86 {
		t.Errorf("expected essential ratio 86, got %d", monthly.EssentialRatio)
	}

	slices, err := svc.GetExpenseDistribution(ws.ID, 0)
	testutil.AssertNoError(t, err)
	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	if slices[0].Name != "Housing" || !slices[0].Value.Equal(decimal.NewFromInt(1050)) {
		t.Errorf("expected Housing 1050 first, got %s %s", slices[0].Name, slices[0].Value)
	}
}
