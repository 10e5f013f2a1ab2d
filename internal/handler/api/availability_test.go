//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"table-reserve/internal/handler/api"
	"table-reserve/internal/pkg/errs"
	"table-reserve/internal/usecase/queries"
	"table-reserve/tests/common/httptest"
	queriesmock "table-reserve/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockQ    *queriesmock.MockAvailabilityQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQ = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)

	handler := api.NewAvailabilityHandler(s.mockQ)
	s.router.GET("/availability", handler.Get)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGet() {
	s.Run("success: returns the grid", func() {
		s.mockQ.EXPECT().GetAvailability(gomock.Any(), "2026-09-04").Return([]queries.SlotTableAvailability{
			{Slot: "13-15", Table: 1, Available: true, Capacity: 4},
			{Slot: "13-15", Table: 2, Available: false, Capacity: 4},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?date=2026-09-04", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"date":"2026-09-04"`)
		s.Contains(rec.Body.String(), `"available":false`)
	})

	s.Run("missing date: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("malformed date: returns 400", func() {
		s.mockQ.EXPECT().GetAvailability(gomock.Any(), "04/09/2026").
			Return(nil, errs.Mark(errs.New("bad date"), queries.ErrInvalidDate)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?date=04%2F09%2F2026", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("store failure: returns 500", func() {
		s.mockQ.EXPECT().GetAvailability(gomock.Any(), "2026-09-04").
			Return(nil, errs.Mark(errs.New("query failed"), errs.ErrStoreFailure)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?date=2026-09-04", nil)
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}
