package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

type patientRequest struct {
	Name      string `json:"name" binding:"required"`
	BirthDate string `json:"birth_date"`
	Sex       string `json:"sex" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}

func (r patientRequest) input() service.PatientInput {
	return service.PatientInput{
		Name:      r.Name,
		BirthDate: r.BirthDate,
		Sex:       r.Sex,
		Phone:     r.Phone,
		Email:     r.Email,
		Notes:     r.Notes,
	}
}

func (s *Server) createPatient(c *gin.Context) {
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "name and sex are required")
		return
	}
	id, err := service.CreatePatient(s.db, req.input())
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	p, err := service.GetPatient(s.db, id)
	if err != nil {
		apiError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) listPatients(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	patients, err := service.ListPatients(s.db, service.ListPatientsFilter{
		Query:           c.Query("query"),
		IncludeArchived: c.Query("include_archived") == "true",
		Limit:           limit,
	})
	if err != nil {
		apiError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

func (s *Server) getPatient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := service.GetPatient(s.db, id)
	if err != nil {
		apiError(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) updatePatient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "name and sex are required")
		return
	}
	if err := service.UpdatePatient(s.db, id, req.input()); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	p, err := service.GetPatient(s.db, id)
	if err != nil {
		apiError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) archivePatient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := service.ArchivePatient(s.db, id); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived": true})
}

type checkInRequest struct {
	CheckedAt    string             `json:"checked_at"`
	HeightM      float64            `json:"height_m"`
	WeightKg     float64            `json:"weight_kg"`
	BodyFatPct   float64            `json:"body_fat_pct"`
	MusclePct    float64            `json:"muscle_pct"`
	VisceralFat  float64            `json:"visceral_fat"`
	BMRKcal      int                `json:"bmr_kcal"`
	BodyAgeYears int                `json:"body_age_years"`
	Measurements map[string]float64 `json:"measurements"`
	Notes        string             `json:"notes"`
}

func (s *Server) createCheckIn(c *gin.Context) {
	patientID, ok := idParam(c)
	if !ok {
		return
	}
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid check-in payload")
		return
	}
	in := service.CheckInInput{
		PatientID:    patientID,
		HeightM:      req.HeightM,
		WeightKg:     req.WeightKg,
		BodyFatPct:   req.BodyFatPct,
		MusclePct:    req.MusclePct,
		VisceralFat:  req.VisceralFat,
		BMRKcal:      req.BMRKcal,
		BodyAgeYears: req.BodyAgeYears,
		Measurements: req.Measurements,
		Notes:        req.Notes,
	}
	if req.CheckedAt != "" {
		at, err := time.Parse(time.RFC3339, req.CheckedAt)
		if err != nil {
			apiError(c, http.StatusBadRequest, "checked_at must be RFC 3339")
			return
		}
		in.CheckedAt = at
	}
	id, err := service.AddCheckIn(s.db, in)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	views, err := service.ListCheckInViews(s.db, service.CheckInFilter{PatientID: patientID, Limit: 1})
	if err != nil || len(views) == 0 || views[0].CheckIn.ID != id {
		ci, getErr := service.GetCheckIn(s.db, id)
		if getErr != nil {
			apiError(c, http.StatusInternalServerError, getErr.Error())
			return
		}
		c.JSON(http.StatusCreated, ci)
		return
	}
	c.JSON(http.StatusCreated, views[0])
}

func (s *Server) listCheckIns(c *gin.Context) {
	patientID, ok := idParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	views, err := service.ListCheckInViews(s.db, service.CheckInFilter{
		PatientID: patientID,
		Date:      c.Query("date"),
		FromDate:  c.Query("from"),
		ToDate:    c.Query("to"),
		Limit:     limit,
	})
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"check_ins": views})
}

func (s *Server) deleteCheckIn(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := service.DeleteCheckIn(s.db, id); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type planRequest struct {
	Name    string `json:"name" binding:"required"`
	WaterML int    `json:"water_ml"`
	Notes   string `json:"notes"`
}

func (s *Server) createPlan(c *gin.Context) {
	patientID, ok := idParam(c)
	if !ok {
		return
	}
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "plan name is required")
		return
	}
	id, err := service.CreatePlan(s.db, service.PlanInput{
		PatientID: patientID,
		Name:      req.Name,
		WaterML:   req.WaterML,
		Notes:     req.Notes,
	})
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	plan, err := service.GetPlan(s.db, id)
	if err != nil {
		apiError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (s *Server) listPlans(c *gin.Context) {
	patientID, ok := idParam(c)
	if !ok {
		return
	}
	plans, err := service.ListPlans(s.db, patientID)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (s *Server) planSummary(c *gin.Context) {
	planID, ok := idParam(c)
	if !ok {
		return
	}
	summary, err := service.SummarizePlan(s.db, planID)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

type mealRequest struct {
	Name      string `json:"name" binding:"required"`
	TimeOfDay string `json:"time_of_day"`
	IsFree    bool   `json:"is_free"`
	Position  int    `json:"position"`
}

func (s *Server) addMeal(c *gin.Context) {
	planID, ok := idParam(c)
	if !ok {
		return
	}
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "meal name is required")
		return
	}
	id, err := service.AddMeal(s.db, service.MealInput{
		PlanID:    planID,
		Name:      req.Name,
		TimeOfDay: req.TimeOfDay,
		IsFree:    req.IsFree,
		Position:  req.Position,
	})
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type foodItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity string  `json:"quantity"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	Calories int     `json:"calories"`
	Position int     `json:"position"`
}

func (s *Server) addFoodItem(c *gin.Context) {
	mealID, ok := idParam(c)
	if !ok {
		return
	}
	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "food item name is required")
		return
	}
	id, err := service.AddFoodItem(s.db, service.FoodItemInput{
		MealID:   mealID,
		Name:     req.Name,
		Quantity: req.Quantity,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
		Calories: req.Calories,
		Position: req.Position,
	})
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) patientTrend(c *gin.Context) {
	patientID, ok := idParam(c)
	if !ok {
		return
	}
	trend, err := service.PatientTrend(s.db, patientID, c.Query("from"), c.Query("to"))
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (s *Server) patientReport(c *gin.Context) {
	patientID, ok := idParam(c)
	if !ok {
		return
	}
	report, err := service.BuildPatientReport(s.db, patientID, time.Now())
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

type appointmentRequest struct {
	ScheduledAt string `json:"scheduled_at" binding:"required"`
	DurationMin int    `json:"duration_min"`
	Notes       string `json:"notes"`
}

func (s *Server) scheduleAppointment(c *gin.Context) {
	patientID, ok := idParam(c)
	if !ok {
		return
	}
	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "scheduled_at is required")
		return
	}
	at, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		apiError(c, http.StatusBadRequest, "scheduled_at must be RFC 3339")
		return
	}
	id, err := service.ScheduleAppointment(s.db, service.AppointmentInput{
		PatientID:   patientID,
		ScheduledAt: at,
		DurationMin: req.DurationMin,
		Notes:       req.Notes,
	})
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) listAppointments(c *gin.Context) {
	var patientID int64
	if raw := c.Query("patient_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid patient_id")
			return
		}
		patientID = id
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	appts, err := service.ListAppointments(s.db, service.AppointmentFilter{
		PatientID: patientID,
		Date:      c.Query("date"),
		FromDate:  c.Query("from"),
		ToDate:    c.Query("to"),
		Status:    c.Query("status"),
		Limit:     limit,
	})
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (s *Server) completeAppointment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := service.CompleteAppointment(s.db, id); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": service.AppointmentCompleted})
}

func (s *Server) cancelAppointment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := service.CancelAppointment(s.db, id); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": service.AppointmentCancelled})
}

func (s *Server) listReferenceFoods(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	foods, err := service.ListReferenceFoods(s.db, c.Query("query"), limit)
	if err != nil {
		apiError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}
