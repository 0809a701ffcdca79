package seguranca

import "gorm.io/gorm"

type Filtros struct {
	DataInicio string
	DataFim    string
	Equipe     string
	Status     string
}

type Repository interface {
	Salvar(db *gorm.DB, o *ObservacaoSeguranca) error
	Atualizar(db *gorm.DB, o *ObservacaoSeguranca) error
	BuscarPorID(db *gorm.DB, id uint) (*ObservacaoSeguranca, error)
	Listar(db *gorm.DB, f Filtros) ([]ObservacaoSeguranca, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, o *ObservacaoSeguranca) error {
	return db.Create(o).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, o *ObservacaoSeguranca) error {
	return db.Save(o).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*ObservacaoSeguranca, error) {
	var o ObservacaoSeguranca
	err := db.First(&o, id).Error
	return &o, err
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtros) ([]ObservacaoSeguranca, error) {
	q := db.Model(&ObservacaoSeguranca{})
	if f.DataInicio != "" {
		q = q.Where("data >= ?", f.DataInicio)
	}
	if f.DataFim != "" {
		q = q.Where("data <= ?", f.DataFim)
	}
	if f.Equipe != "" {
		q = q.Where("equipe = ?", f.Equipe)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var lista []ObservacaoSeguranca
	err := q.Order("data DESC").Find(&lista).Error
	return lista, err
}
