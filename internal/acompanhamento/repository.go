package acompanhamento

import "gorm.io/gorm"

type Filtros struct {
	DataInicio string
	DataFim    string
	Turno      string
	Status     string
}

type Repository interface {
	Salvar(db *gorm.DB, a *DiarioAcompanhamento) error
	Atualizar(db *gorm.DB, a *DiarioAcompanhamento) error
	BuscarPorID(db *gorm.DB, id uint) (*DiarioAcompanhamento, error)
	Listar(db *gorm.DB, f Filtros) ([]DiarioAcompanhamento, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, a *DiarioAcompanhamento) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, a *DiarioAcompanhamento) error {
	return db.Save(a).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*DiarioAcompanhamento, error) {
	var a DiarioAcompanhamento
	err := db.First(&a, id).Error
	return &a, err
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtros) ([]DiarioAcompanhamento, error) {
	q := db.Model(&DiarioAcompanhamento{})
	if f.DataInicio != "" {
		q = q.Where("data >= ?", f.DataInicio)
	}
	if f.DataFim != "" {
		q = q.Where("data <= ?", f.DataFim)
	}
	if f.Turno != "" {
		q = q.Where("turno = ?", f.Turno)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var lista []DiarioAcompanhamento
	err := q.Order("data DESC").Find(&lista).Error
	return lista, err
}
