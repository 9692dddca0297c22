// Package hotel 提供酒店预订相关的 HTTP Handler
package hotel

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management-backend/internal/common/handler"
	"github.com/dumeirei/hotel-management-backend/internal/common/response"
	hotelService "github.com/dumeirei/hotel-management-backend/internal/service/hotel"
)

// ReportHandler 报表处理器
type ReportHandler struct {
	reportService  *hotelService.ReportService
	catalogService *hotelService.CatalogService
}

// NewReportHandler 创建报表处理器
func NewReportHandler(reportSvc *hotelService.ReportService, catalogSvc *hotelService.CatalogService) *ReportHandler {
	return &ReportHandler{
		reportService:  reportSvc,
		catalogService: catalogSvc,
	}
}

// GetDashboard 获取仪表盘
// @Summary 获取仪表盘
// @Tags 报表
// @Produce json
// @Success 200 {object} response.Response{data=hotelService.DashboardInfo}
// @Router /api/v1/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	info, err := h.reportService.GetDashboard(c.Request.Context())
	handler.MustSucceed(c, err, info)
}

// GetReservationReport 获取预订报表
// @Summary 获取预订报表
// @Tags 报表
// @Produce json
// @Param start_date query string true "开始日期"
// @Param end_date query string true "结束日期"
// @Success 200 {object} response.Response{data=[]hotelService.ReservationInfo}
// @Router /api/v1/reports/reservations [get]
func (h *ReportHandler) GetReservationReport(c *gin.Context) {
	start, end, ok := handler.ParseRequiredQueryDateRange(c)
	if !ok {
		return
	}

	list, err := h.reportService.ReservationReport(c.Request.Context(), start, end)
	handler.MustSucceed(c, err, list)
}

// GetRevenueSummary 获取收入汇总
// @Summary 获取收入汇总
// @Tags 报表
// @Produce json
// @Param start_date query string true "开始日期"
// @Param end_date query string true "结束日期"
// @Success 200 {object} response.Response{data=hotelService.RevenueSummary}
// @Router /api/v1/reports/revenue [get]
func (h *ReportHandler) GetRevenueSummary(c *gin.Context) {
	start, end, ok := handler.ParseRequiredQueryDateRange(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GetRevenueSummary(c.Request.Context(), start, end)
	handler.MustSucceed(c, err, summary)
}

// CreateCatalogItem 创建服务目录项
// @Summary 创建服务目录项
// @Tags 服务目录
// @Accept json
// @Produce json
// @Param request body hotelService.CatalogItemRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.CatalogItemInfo}
// @Router /api/v1/services [post]
func (h *ReportHandler) CreateCatalogItem(c *gin.Context) {
	var req hotelService.CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), &req)
	handler.MustSucceed(c, err, item)
}

// ListCatalogItems 获取服务目录列表
// @Summary 获取服务目录列表
// @Tags 服务目录
// @Produce json
// @Success 200 {object} response.Response{data=[]hotelService.CatalogItemInfo}
// @Router /api/v1/services [get]
func (h *ReportHandler) ListCatalogItems(c *gin.Context) {
	list, err := h.catalogService.ListItems(c.Request.Context())
	handler.MustSucceed(c, err, list)
}

// UpdateCatalogItem 更新服务目录项
// @Summary 更新服务目录项
// @Tags 服务目录
// @Accept json
// @Produce json
// @Param id path int true "服务ID"
// @Param request body hotelService.CatalogItemRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.CatalogItemInfo}
// @Router /api/v1/services/{id} [put]
func (h *ReportHandler) UpdateCatalogItem(c *gin.Context) {
	serviceID, ok := handler.ParseID(c, "服务")
	if !ok {
		return
	}

	var req hotelService.CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	item, err := h.catalogService.UpdateItem(c.Request.Context(), serviceID, &req)
	handler.MustSucceed(c, err, item)
}
