package falha

import "gorm.io/gorm"

type Filtros struct {
	DataInicio string
	DataFim    string
	Severidade string
	Status     string
}

type Repository interface {
	Salvar(db *gorm.DB, f *ReportFalhaOperacional) error
	Atualizar(db *gorm.DB, f *ReportFalhaOperacional) error
	BuscarPorID(db *gorm.DB, id uint) (*ReportFalhaOperacional, error)
	Listar(db *gorm.DB, filtros Filtros) ([]ReportFalhaOperacional, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, f *ReportFalhaOperacional) error {
	return db.Create(f).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, f *ReportFalhaOperacional) error {
	return db.Save(f).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*ReportFalhaOperacional, error) {
	var f ReportFalhaOperacional
	err := db.First(&f, id).Error
	return &f, err
}

func (r *repositoryImpl) Listar(db *gorm.DB, filtros Filtros) ([]ReportFalhaOperacional, error) {
	q := db.Model(&ReportFalhaOperacional{})
	if filtros.DataInicio != "" {
		q = q.Where("data_ocorrencia >= ?", filtros.DataInicio)
	}
	if filtros.DataFim != "" {
		q = q.Where("data_ocorrencia <= ?", filtros.DataFim)
	}
	if filtros.Severidade != "" {
		q = q.Where("severidade = ?", filtros.Severidade)
	}
	if filtros.Status != "" {
		q = q.Where("status = ?", filtros.Status)
	}
	var lista []ReportFalhaOperacional
	err := q.Order("data_ocorrencia DESC").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&ReportFalhaOperacional{}, id).Error
}
