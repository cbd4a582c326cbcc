package services

import (
	"testing"
	"time"

	"github.com/upsight-uz/portal-api/model"
)

func testStudent(id string, nameKo string) model.Student {
	return model.Student{StudentID: id, NameKo: nameKo, NameUz: "Talaba"}
}

func TestMergePayments(t *testing.T) {
	entrance := []model.EnterancePayment{
		{
			ID:      11,
			Date:    model.NewDate(2026, time.February, 1),
			Amount:  500000,
			Student: testStudent("ST-001", "김학생"),
			Enterance: model.Enterance{
				Years: 2026,
				Kind:  "language",
				Order: "spring",
				University: model.University{
					NameKo: "서울대학교",
					NameUz: "Seul universiteti",
				},
			},
		},
	}
	class := []model.ClassPayment{
		{
			ID:           7,
			Date:         model.NewDate(2026, time.March, 1),
			Amount:       300000,
			PaymentMonth: 2,
			Student:      testStudent("ST-002", "이학생"),
			Class:        model.Class{Group: 1, Level: "low", Lecture: "topik"},
		},
	}

	records := MergePayments(entrance, class)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Newest first: the class payment from March leads.
	if records[0].ID != "class_7" || records[1].ID != "entrance_11" {
		t.Errorf("unexpected order: %s, %s", records[0].ID, records[1].ID)
	}

	classRec := records[0]
	if classRec.PaymentType != PaymentTypeClass {
		t.Errorf("PaymentType = %s", classRec.PaymentType)
	}
	if classRec.PaymentMonth == nil || *classRec.PaymentMonth != 2 {
		t.Error("class record should carry its payment month")
	}
	if classRec.PaymentMonthDisplay == nil || *classRec.PaymentMonthDisplay != "Month 2" {
		t.Errorf("PaymentMonthDisplay = %v", classRec.PaymentMonthDisplay)
	}
	if classRec.ClassInfo == nil || *classRec.ClassInfo != "Group 1 - Low TOPIK" {
		t.Errorf("ClassInfo = %v", classRec.ClassInfo)
	}
	if classRec.UniversityName != nil || classRec.EnteranceInfo != nil {
		t.Error("class record should not carry entrance labels")
	}
	if classRec.StudentID != "ST-002" || classRec.StudentName != "이학생" {
		t.Errorf("student identity = %s / %s", classRec.StudentID, classRec.StudentName)
	}

	entranceRec := records[1]
	if entranceRec.PaymentType != PaymentTypeEntrance {
		t.Errorf("PaymentType = %s", entranceRec.PaymentType)
	}
	if entranceRec.EnteranceInfo == nil || *entranceRec.EnteranceInfo != "2026 - Language (Spring)" {
		t.Errorf("EnteranceInfo = %v", entranceRec.EnteranceInfo)
	}
	if entranceRec.UniversityName == nil || *entranceRec.UniversityName == "" {
		t.Error("entrance record should carry a university name")
	}
	if entranceRec.PaymentMonth != nil || entranceRec.ClassInfo != nil {
		t.Error("entrance record should not carry class labels")
	}
	if entranceRec.OriginalID != 11 {
		t.Errorf("OriginalID = %d", entranceRec.OriginalID)
	}
}

func TestMergePaymentsStableOnSameDate(t *testing.T) {
	date := model.NewDate(2026, time.May, 1)
	entrance := []model.EnterancePayment{{ID: 1, Date: date}, {ID: 2, Date: date}}
	class := []model.ClassPayment{{ID: 3, Date: date}}

	records := MergePayments(entrance, class)
	if records[0].ID != "entrance_1" || records[1].ID != "entrance_2" || records[2].ID != "class_3" {
		t.Errorf("same-date rows should keep ledger order, got %s, %s, %s",
			records[0].ID, records[1].ID, records[2].ID)
	}
}

func TestSumPayments(t *testing.T) {
	records := []PaymentRecord{
		{PaymentType: PaymentTypeEntrance, Amount: 500000},
		{PaymentType: PaymentTypeEntrance, Amount: 0.1},
		{PaymentType: PaymentTypeClass, Amount: 300000},
		{PaymentType: PaymentTypeClass, Amount: 0.2},
	}

	totals := SumPayments(records)
	if totals.TotalAmount != 800000.3 {
		t.Errorf("TotalAmount = %v", totals.TotalAmount)
	}
	if totals.EntrancePaymentsTotal != 500000.1 {
		t.Errorf("EntrancePaymentsTotal = %v", totals.EntrancePaymentsTotal)
	}
	if totals.ClassPaymentsTotal != 300000.2 {
		t.Errorf("ClassPaymentsTotal = %v", totals.ClassPaymentsTotal)
	}
	if totals.EntrancePaymentsCount != 2 || totals.ClassPaymentsCount != 2 {
		t.Errorf("counts = %d / %d", totals.EntrancePaymentsCount, totals.ClassPaymentsCount)
	}
}

func TestSumAmounts(t *testing.T) {
	// Plain float64 addition would give 0.30000000000000004 here.
	if got := SumAmounts([]float64{0.1, 0.2}); got != 0.3 {
		t.Errorf("SumAmounts = %v, want 0.3", got)
	}
	if got := SumAmounts(nil); got != 0 {
		t.Errorf("SumAmounts(nil) = %v", got)
	}
}
