package implementation

import (
	"context"
	"errors"

	"ai-studyplanner-be/internal/entity"
	"ai-studyplanner-be/internal/mapper"
	"ai-studyplanner-be/internal/model"
	"ai-studyplanner-be/internal/repository/contract"
	"ai-studyplanner-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ScheduleMapper
}

func NewScheduleRepository(db *gorm.DB) contract.ScheduleRepository {
	return &ScheduleRepositoryImpl{
		db:     db,
		mapper: mapper.NewScheduleMapper(),
	}
}

func (r *ScheduleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ScheduleRepositoryImpl) Create(ctx context.Context, schedule *entity.Schedule) error {
	m := r.mapper.ToModel(schedule)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*schedule = *r.mapper.ToEntity(m)
	return nil
}

func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Schedule{}, id).Error
}

func (r *ScheduleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Schedule, error) {
	var m model.Schedule
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ScheduleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Schedule, error) {
	var models []*model.Schedule
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
