package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
}

type memberResponse struct {
	MemberID      string `json:"memberId"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	Active        bool   `json:"active"`
	RegisteredAt  string `json:"registeredAt"`
	LastPaymentAt string `json:"lastPaymentAt,omitempty"`
}

func toMemberResponse(m *models.Member) memberResponse {
	resp := memberResponse{
		MemberID:     m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FullName:     m.FullName,
		Active:       m.Active,
		RegisteredAt: m.RegisteredAt.Format(time.RFC3339),
	}
	if m.LastPaymentAt != nil {
		resp.LastPaymentAt = m.LastPaymentAt.Format(time.RFC3339)
	}
	return resp
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	member, err := s.members.Register(c.Request.Context(), req.Username, req.Password, req.Email, req.FullName)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMemberResponse(member))
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := s.members.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type registerCopyRequest struct {
	CopyID string `json:"copyId" binding:"required"`
	BookID string `json:"bookId" binding:"required"`
	Rack   string `json:"rack"`
}

type copyResponse struct {
	CopyID         string `json:"copyId"`
	BookID         string `json:"bookId"`
	Rack           string `json:"rack"`
	Status         string `json:"status"`
	LastBorrowerID string `json:"lastBorrowerId,omitempty"`
}

func toCopyResponse(bc *models.BookCopy) copyResponse {
	resp := copyResponse{
		CopyID: bc.CopyID,
		BookID: bc.BookID,
		Rack:   bc.Rack,
		Status: string(bc.Status),
	}
	if bc.LastBorrowerID != nil {
		resp.LastBorrowerID = *bc.LastBorrowerID
	}
	return resp
}

func (s *Server) registerCopy(c *gin.Context) {
	var req registerCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	copyRec, err := s.lending.RegisterCopy(c.Request.Context(), req.CopyID, req.BookID, req.Rack)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCopyResponse(copyRec))
}

type borrowRequest struct {
	MemberID string `json:"memberId"`
}

type borrowingResponse struct {
	BorrowingID string  `json:"borrowingId"`
	CopyID      string  `json:"copyId"`
	MemberID    string  `json:"memberId"`
	IssueAt     string  `json:"issueAt"`
	DueAt       string  `json:"dueAt"`
	ReturnAt    string  `json:"returnAt,omitempty"`
	FineAmount  float64 `json:"fineAmount"`
	FinePaid    bool    `json:"finePaid"`
	OverdueDays *int    `json:"overdueDays,omitempty"`
}

func toBorrowingResponse(b *models.Borrowing) borrowingResponse {
	resp := borrowingResponse{
		BorrowingID: b.ID,
		CopyID:      b.CopyID,
		MemberID:    b.MemberID,
		IssueAt:     b.IssueAt.Format(time.RFC3339),
		DueAt:       b.DueAt.Format(time.RFC3339),
		FineAmount:  b.FineAmount,
		FinePaid:    b.FinePaid,
		OverdueDays: b.OverdueDays,
	}
	if b.ReturnAt != nil {
		resp.ReturnAt = b.ReturnAt.Format(time.RFC3339)
	}
	return resp
}

// borrowCopy issues the copy to the member named in the body, defaulting to
// the authenticated member for self-service checkout.
func (s *Server) borrowCopy(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	memberID := req.MemberID
	if memberID == "" {
		memberID = currentMemberID(c)
	}

	borrowing, err := s.lending.BorrowCopy(c.Request.Context(), c.Param("copyId"), memberID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBorrowingResponse(borrowing))
}

type returnResponse struct {
	Borrowing     *borrowingResponse `json:"borrowing,omitempty"`
	FineAmount    float64            `json:"fineAmount"`
	OverdueDays   int                `json:"overdueDays"`
	OrphanedReset bool               `json:"orphanedReset"`
}

func (s *Server) returnCopy(c *gin.Context) {
	res, err := s.lending.ReturnCopy(c.Request.Context(), c.Param("copyId"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := returnResponse{
		FineAmount:    res.FineAmount,
		OverdueDays:   res.OverdueDays,
		OrphanedReset: res.OrphanedReset,
	}
	if res.Borrowing != nil {
		b := toBorrowingResponse(res.Borrowing)
		resp.Borrowing = &b
	}
	c.JSON(http.StatusOK, resp)
}

type paymentResponse struct {
	PaymentID   string  `json:"paymentId"`
	MemberID    string  `json:"memberId,omitempty"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	PaidAt      string  `json:"paidAt"`
	Description string  `json:"description"`
	BorrowingID string  `json:"borrowingId,omitempty"`
}

func toPaymentResponse(p *models.Payment) paymentResponse {
	resp := paymentResponse{
		PaymentID:   p.ID,
		Type:        string(p.Type),
		Amount:      p.Amount,
		PaidAt:      p.PaidAt.Format(time.RFC3339),
		Description: p.Description,
	}
	if p.MemberID != nil {
		resp.MemberID = *p.MemberID
	}
	if p.BorrowingID != nil {
		resp.BorrowingID = *p.BorrowingID
	}
	return resp
}

func (s *Server) settleFine(c *gin.Context) {
	payment, err := s.settlement.SettleFine(c.Request.Context(), c.Param("borrowingId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

type overdueResponse struct {
	Borrowing   borrowingResponse `json:"borrowing"`
	AccruedDays int               `json:"accruedDays"`
	AccruedFine float64           `json:"accruedFine"`
}

func (s *Server) listOverdue(c *gin.Context) {
	var asOf time.Time
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be RFC3339"})
			return
		}
		asOf = parsed
	}

	overdue, err := s.lending.ListOverdue(c.Request.Context(), asOf)
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := make([]overdueResponse, len(overdue))
	for i, o := range overdue {
		resp[i] = overdueResponse{
			Borrowing:   toBorrowingResponse(o.Borrowing),
			AccruedDays: o.AccruedDays,
			AccruedFine: o.AccruedFine,
		}
	}
	c.JSON(http.StatusOK, gin.H{"overdue": resp})
}

type membershipRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (s *Server) setMembership(c *gin.Context) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	member, err := s.members.SetMembershipActive(c.Request.Context(), c.Param("memberId"), *req.Active)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

func (s *Server) listFines(c *gin.Context) {
	fines, err := s.settlement.ListUnpaidFines(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := make([]borrowingResponse, len(fines))
	var total float64
	for i, b := range fines {
		resp[i] = toBorrowingResponse(b)
		total += b.FineAmount
	}
	c.JSON(http.StatusOK, gin.H{"fines": resp, "total": total})
}

func (s *Server) listPayments(c *gin.Context) {
	payments, err := s.settlement.ListPayments(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"payments": resp})
}
