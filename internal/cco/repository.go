package cco

import "gorm.io/gorm"

type Filtros struct {
	DataInicio string
	DataFim    string
	Equipe     string
	Turno      string
}

type Repository interface {
	Salvar(db *gorm.DB, c *ControleCCO) error
	Atualizar(db *gorm.DB, c *ControleCCO) error
	BuscarPorID(db *gorm.DB, id uint) (*ControleCCO, error)
	Listar(db *gorm.DB, f Filtros) ([]ControleCCO, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *ControleCCO) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *ControleCCO) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*ControleCCO, error) {
	var c ControleCCO
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtros) ([]ControleCCO, error) {
	q := db.Model(&ControleCCO{})
	if f.DataInicio != "" {
		q = q.Where("data_controle >= ?", f.DataInicio)
	}
	if f.DataFim != "" {
		q = q.Where("data_controle <= ?", f.DataFim)
	}
	if f.Equipe != "" {
		q = q.Where("equipe = ?", f.Equipe)
	}
	if f.Turno != "" {
		q = q.Where("turno = ?", f.Turno)
	}
	var lista []ControleCCO
	err := q.Order("data_controle DESC").Find(&lista).Error
	return lista, err
}
