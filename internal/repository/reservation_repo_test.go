// Package repository 预订仓储单元测试
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-management-backend/internal/models"
)

func setupReservationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.RoomType{}, &models.Room{}, &models.Guest{},
		&models.Reservation{}, &models.Billing{},
		&models.Service{}, &models.ReservationService{},
	)
	require.NoError(t, err)

	return db
}

func mkDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedRoomAndGuest(t *testing.T, db *gorm.DB) (*models.Room, *models.Guest) {
	roomType := &models.RoomType{TypeName: "标准间", BasePrice: 100}
	require.NoError(t, db.Create(roomType).Error)

	room := &models.Room{RoomNo: 101, TypeID: roomType.ID, Status: models.RoomStatusVacant}
	require.NoError(t, db.Create(room).Error)

	guest := &models.Guest{
		FirstName: "伟", LastName: "张",
		Email: "zhangwei@example.com", NationalID: "4210311990010",
		Age: 30, Gender: models.GenderMale, City: "武汉",
	}
	require.NoError(t, db.Create(guest).Error)

	return room, guest
}

func TestReservationRepository_Create(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room, guest := seedRoomAndGuest(t, db)

	reservation := &models.Reservation{
		ReservationDate: mkDate(2026, 3, 1),
		GuestID:         guest.ID,
		RoomNo:          room.RoomNo,
		CheckIn:         mkDate(2026, 3, 10),
		CheckOut:        mkDate(2026, 3, 12),
		Adults:          2,
		Children:        1,
	}

	err := repo.Create(ctx, reservation)
	require.NoError(t, err)
	assert.NotZero(t, reservation.ID)
	assert.Equal(t, 2, reservation.Nights())
}

func TestReservationRepository_GetByIDWithDetails(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room, guest := seedRoomAndGuest(t, db)

	reservation := &models.Reservation{
		ReservationDate: mkDate(2026, 3, 1),
		GuestID:         guest.ID,
		RoomNo:          room.RoomNo,
		CheckIn:         mkDate(2026, 3, 10),
		CheckOut:        mkDate(2026, 3, 12),
		Adults:          1,
	}
	require.NoError(t, db.Create(reservation).Error)

	billing := &models.Billing{
		ReservationID: reservation.ID,
		RoomCharges:   200,
		Total:         200,
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(billing).Error)

	found, err := repo.GetByIDWithDetails(ctx, reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Guest)
	require.NotNil(t, found.Room)
	require.NotNil(t, found.Room.RoomType)
	require.NotNil(t, found.Billing)
	assert.Equal(t, "zhangwei@example.com", found.Guest.Email)
	assert.Equal(t, "标准间", found.Room.RoomType.TypeName)
	assert.Equal(t, float64(200), found.Billing.Total)
}

func TestReservationRepository_ExistsOverlapping(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room, guest := seedRoomAndGuest(t, db)

	// 在住区间 [3-10, 3-15)
	existing := &models.Reservation{
		ReservationDate: mkDate(2026, 3, 1),
		GuestID:         guest.ID,
		RoomNo:          room.RoomNo,
		CheckIn:         mkDate(2026, 3, 10),
		CheckOut:        mkDate(2026, 3, 15),
		Adults:          1,
	}
	require.NoError(t, db.Create(existing).Error)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"完全重叠", mkDate(2026, 3, 10), mkDate(2026, 3, 15), true},
		{"部分重叠前段", mkDate(2026, 3, 8), mkDate(2026, 3, 11), true},
		{"部分重叠后段", mkDate(2026, 3, 14), mkDate(2026, 3, 18), true},
		{"包含已有区间", mkDate(2026, 3, 8), mkDate(2026, 3, 18), true},
		{"被已有区间包含", mkDate(2026, 3, 11), mkDate(2026, 3, 13), true},
		{"退房日即入住日", mkDate(2026, 3, 15), mkDate(2026, 3, 18), false},
		{"入住日即退房日", mkDate(2026, 3, 8), mkDate(2026, 3, 10), false},
		{"完全不相交", mkDate(2026, 3, 20), mkDate(2026, 3, 22), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ExistsOverlapping(ctx, room.RoomNo, tt.checkIn, tt.checkOut, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("排除自身后不冲突", func(t *testing.T) {
		got, err := repo.ExistsOverlapping(ctx, room.RoomNo, mkDate(2026, 3, 10), mkDate(2026, 3, 15), existing.ID)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("其他房间不冲突", func(t *testing.T) {
		got, err := repo.ExistsOverlapping(ctx, 999, mkDate(2026, 3, 10), mkDate(2026, 3, 15), 0)
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestReservationRepository_ListCurrent(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room, guest := seedRoomAndGuest(t, db)
	today := mkDate(2026, 3, 12)

	// 在住
	current := &models.Reservation{
		ReservationDate: mkDate(2026, 3, 1), GuestID: guest.ID, RoomNo: room.RoomNo,
		CheckIn: mkDate(2026, 3, 10), CheckOut: mkDate(2026, 3, 15), Adults: 1,
	}
	require.NoError(t, db.Create(current).Error)

	// 今日退房, 不算在住
	leaving := &models.Reservation{
		ReservationDate: mkDate(2026, 3, 1), GuestID: guest.ID, RoomNo: room.RoomNo,
		CheckIn: mkDate(2026, 3, 8), CheckOut: mkDate(2026, 3, 12), Adults: 1,
	}
	require.NoError(t, db.Create(leaving).Error)

	// 未来预订
	future := &models.Reservation{
		ReservationDate: mkDate(2026, 3, 1), GuestID: guest.ID, RoomNo: room.RoomNo,
		CheckIn: mkDate(2026, 3, 20), CheckOut: mkDate(2026, 3, 22), Adults: 1,
	}
	require.NoError(t, db.Create(future).Error)

	list, err := repo.ListCurrent(ctx, today)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, current.ID, list[0].ID)
}

func TestReservationRepository_ListByDateRange(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room, guest := seedRoomAndGuest(t, db)

	for _, day := range []int{5, 10, 20} {
		r := &models.Reservation{
			ReservationDate: mkDate(2026, 3, 1), GuestID: guest.ID, RoomNo: room.RoomNo,
			CheckIn: mkDate(2026, 3, day), CheckOut: mkDate(2026, 3, day+1), Adults: 1,
		}
		require.NoError(t, db.Create(r).Error)
	}

	list, err := repo.ListByDateRange(ctx, mkDate(2026, 3, 8), mkDate(2026, 3, 15))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mkDate(2026, 3, 10), list[0].CheckIn)
}

func TestReservationRepository_ListOccupiedRoomNos(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room, guest := seedRoomAndGuest(t, db)
	room2 := &models.Room{RoomNo: 102, TypeID: room.TypeID, Status: models.RoomStatusVacant}
	require.NoError(t, db.Create(room2).Error)

	today := mkDate(2026, 3, 12)

	inHouse := &models.Reservation{
		ReservationDate: mkDate(2026, 3, 1), GuestID: guest.ID, RoomNo: room.RoomNo,
		CheckIn: mkDate(2026, 3, 10), CheckOut: mkDate(2026, 3, 15), Adults: 1,
	}
	require.NoError(t, db.Create(inHouse).Error)

	past := &models.Reservation{
		ReservationDate: mkDate(2026, 3, 1), GuestID: guest.ID, RoomNo: room2.RoomNo,
		CheckIn: mkDate(2026, 3, 5), CheckOut: mkDate(2026, 3, 8), Adults: 1,
	}
	require.NoError(t, db.Create(past).Error)

	roomNos, err := repo.ListOccupiedRoomNos(ctx, today)
	require.NoError(t, err)
	require.Len(t, roomNos, 1)
	assert.Equal(t, room.RoomNo, roomNos[0])

	count, err := repo.CountOccupiedRooms(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReservationRepository_CountActiveByGuest(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room, guest := seedRoomAndGuest(t, db)
	today := mkDate(2026, 3, 12)

	// 今日退房, 仍算未结束
	dueToday := &models.Reservation{
		ReservationDate: mkDate(2026, 3, 1), GuestID: guest.ID, RoomNo: room.RoomNo,
		CheckIn: mkDate(2026, 3, 8), CheckOut: mkDate(2026, 3, 12), Adults: 1,
	}
	require.NoError(t, db.Create(dueToday).Error)

	// 已退房
	past := &models.Reservation{
		ReservationDate: mkDate(2026, 2, 1), GuestID: guest.ID, RoomNo: room.RoomNo,
		CheckIn: mkDate(2026, 2, 5), CheckOut: mkDate(2026, 2, 8), Adults: 1,
	}
	require.NoError(t, db.Create(past).Error)

	count, err := repo.CountActiveByGuest(ctx, guest.ID, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 事务内变体与非事务查询结果一致
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		txCount, err := repo.CountActiveByGuestTx(ctx, tx, guest.ID, today)
		require.NoError(t, err)
		assert.Equal(t, int64(1), txCount)
		return nil
	}))
}

func TestReservationRepository_List(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room, guest := seedRoomAndGuest(t, db)

	for day := 1; day <= 5; day++ {
		r := &models.Reservation{
			ReservationDate: mkDate(2026, 3, 1), GuestID: guest.ID, RoomNo: room.RoomNo,
			CheckIn: mkDate(2026, 4, day), CheckOut: mkDate(2026, 4, day+1), Adults: 1,
		}
		require.NoError(t, db.Create(r).Error)
	}

	t.Run("按住客过滤", func(t *testing.T) {
		list, total, err := repo.List(ctx, 0, 10, map[string]interface{}{"guest_id": guest.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, list, 5)
	})

	t.Run("分页", func(t *testing.T) {
		list, total, err := repo.List(ctx, 0, 2, map[string]interface{}{})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, list, 2)
	})

	t.Run("按日期过滤", func(t *testing.T) {
		list, total, err := repo.List(ctx, 0, 10, map[string]interface{}{
			"start_date": mkDate(2026, 4, 3),
			"end_date":   mkDate(2026, 4, 4),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 2)
	})
}
