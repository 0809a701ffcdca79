package relatorio

import (
	"strings"

	"gorm.io/gorm"
)

type Filtros struct {
	DataInicio string
	DataFim    string
	Equipe     string
}

type Repository interface {
	Salvar(db *gorm.DB, rel *RelatorioDiario) error
	BuscarPorChave(db *gorm.DB, data, turno, equipe string) (*RelatorioDiario, error)
	Listar(db *gorm.DB, f Filtros) ([]RelatorioDiario, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, rel *RelatorioDiario) error {
	return db.Create(rel).Error
}

func (r *repositoryImpl) BuscarPorChave(db *gorm.DB, data, turno, equipe string) (*RelatorioDiario, error) {
	var rel RelatorioDiario
	err := db.Where("data = ? AND turno = ? AND equipe = ?", data, turno, equipe).First(&rel).Error
	return &rel, err
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtros) ([]RelatorioDiario, error) {
	q := db.Model(&RelatorioDiario{})
	if f.DataInicio != "" {
		q = q.Where("data >= ?", f.DataInicio)
	}
	if f.DataFim != "" {
		q = q.Where("data <= ?", f.DataFim)
	}
	if f.Equipe != "" {
		q = q.Where("LOWER(equipe) LIKE ?", "%"+strings.ToLower(f.Equipe)+"%")
	}
	var lista []RelatorioDiario
	err := q.Order("data DESC").Find(&lista).Error
	return lista, err
}
