package services

import (
	"testing"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/models"
	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/testutil"
)

func TestAddPayment(t *testing.T) {
	t.Run("partial_keeps_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		budget := testutil.CreateTestBudget(t, db, "1000")
		expense := testutil.CreateTestExpense(t, db, budget.ID, nil, "100")

		result, err := svc.AddPayment(expense.ID, testutil.Amount("40"), testutil.Date(t, "2024-03-05"), "deposit")
		testutil.AssertNoError(t, err)

		if result.Status != models.ExpenseStatusPending {
			t.Errorf("expected pending status, got %s", result.Status)
		}
		testutil.AssertAmount(t, result.Remaining, "60")
		if result.Payment.Notes != "deposit" {
			t.Errorf("expected notes 'deposit', got %q", result.Payment.Notes)
		}
	})

	t.Run("sub_cent_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		budget := testutil.CreateTestBudget(t, db, "1000")
		expense := testutil.CreateTestExpense(t, db, budget.ID, nil, "100")

		_, err := svc.AddPayment(expense.ID, testutil.Amount("0.005"), testutil.Date(t, "2024-03-05"), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		var count int64
		db.Model(&models.Payment{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no payment, got %d", count)
		}
	})

	t.Run("settling_marks_paid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		budget := testutil.CreateTestBudget(t, db, "1000")
		expense := testutil.CreateTestExpense(t, db, budget.ID, nil, "100")
		testutil.CreateTestPayment(t, db, expense.ID, "40")

		result, err := svc.AddPayment(expense.ID, testutil.Amount("60"), testutil.Date(t, "2024-03-06"), "")
		testutil.AssertNoError(t, err)

		if result.Status != models.ExpenseStatusPaid {
			t.Errorf("expected paid status, got %s", result.Status)
		}
		testutil.AssertAmount(t, result.Remaining, "0")

		var reloaded models.Expense
		db.First(&reloaded, "id = ?", expense.ID)
		if reloaded.Status != models.ExpenseStatusPaid {
			t.Errorf("expected stored status paid, got %s", reloaded.Status)
		}
	})

	t.Run("exceeds_remaining", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		budget := testutil.CreateTestBudget(t, db, "1000")
		expense := testutil.CreateTestExpense(t, db, budget.ID, nil, "100")
		testutil.CreateTestPayment(t, db, expense.ID, "70")

		_, err := svc.AddPayment(expense.ID, testutil.Amount("30.01"), testutil.Date(t, "2024-03-06"), "")
		testutil.AssertAppError(t, err, "PAYMENT_EXCEEDS_REMAINING")

		var count int64
		db.Model(&models.Payment{}).Count(&count)
		if count != 1 {
			t.Errorf("expected no new payment, got %d payments", count)
		}
	})

	t.Run("already_settled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		budget := testutil.CreateTestBudget(t, db, "1000")
		expense := testutil.CreateTestExpenseWithStatus(t, db, budget.ID, nil, "100", models.ExpenseStatusPaid)
		testutil.CreateTestPayment(t, db, expense.ID, "100")

		_, err := svc.AddPayment(expense.ID, testutil.Amount("1"), testutil.Date(t, "2024-03-06"), "")
		testutil.AssertAppError(t, err, "EXPENSE_ALREADY_SETTLED")
	})

	t.Run("cancelled_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		budget := testutil.CreateTestBudget(t, db, "1000")
		expense := testutil.CreateTestExpenseWithStatus(t, db, budget.ID, nil, "100", models.ExpenseStatusCancelled)

		_, err := svc.AddPayment(expense.ID, testutil.Amount("10"), testutil.Date(t, "2024-03-06"), "")
		testutil.AssertAppError(t, err, "EXPENSE_CANCELLED")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		budget := testutil.CreateTestBudget(t, db, "1000")
		expense := testutil.CreateTestExpense(t, db, budget.ID, nil, "100")

		_, err := svc.AddPayment(expense.ID, testutil.Amount("0"), testutil.Date(t, "2024-03-06"), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("expense_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		_, err := svc.AddPayment("missing", testutil.Amount("10"), testutil.Date(t, "2024-03-06"), "")
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestListPayments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPaymentService(db)
	budget := testutil.CreateTestBudget(t, db, "1000")
	expense := testutil.CreateTestExpense(t, db, budget.ID, nil, "100")
	testutil.CreateTestPayment(t, db, expense.ID, "10")
	testutil.CreateTestPayment(t, db, expense.ID, "20")

	payments, err := svc.ListPayments(expense.ID)
	testutil.AssertNoError(t, err)
	if len(payments) != 2 {
		t.Errorf("expected 2 payments, got %d", len(payments))
	}

	_, err = svc.ListPayments("missing")
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
}

func TestDeletePayment(t *testing.T) {
	t.Run("reverts_paid_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		budget := testutil.CreateTestBudget(t, db, "1000")
		expense := testutil.CreateTestExpense(t, db, budget.ID, nil, "100")

		result, err := svc.AddPayment(expense.ID, testutil.Amount("100"), testutil.Date(t, "2024-03-06"), "")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeletePayment(result.Payment.ID))

		var reloaded models.Expense
		db.First(&reloaded, "id = ?", expense.ID)
		if reloaded.Status != models.ExpenseStatusPending {
			t.Errorf("expected expense back to pending, got %s", reloaded.Status)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)

		err := svc.DeletePayment("missing")
		testutil.AssertAppError(t, err, "PAYMENT_NOT_FOUND")
	})
}
