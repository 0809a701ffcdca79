package diario

import (
	"strings"

	"gorm.io/gorm"
)

type Filtros struct {
	DataInicio string
	DataFim    string
	Equipe     string
	Turno      string
}

// Estatisticas agregadas para o dashboard
type Estatisticas struct {
	TotalPlanejamentos   int64            `json:"total_planejamentos"`
	Finalizados          int64            `json:"planejamentos_finalizados"`
	EficienciaMedia      float64          `json:"eficiencia_media"`
	StatusCounts         map[string]int64 `json:"status_counts"`
	TotalNaoEnviados     int64            `json:"total_protocolos_nao_enviados"`
	TotalVencemHoje      int64            `json:"total_protocolos_vencem_hoje"`
}

type Repository interface {
	Salvar(db *gorm.DB, d *DiarioPlanejamento) error
	Atualizar(db *gorm.DB, d *DiarioPlanejamento) error
	BuscarPorID(db *gorm.DB, id uint) (*DiarioPlanejamento, error)
	ExistePorChave(db *gorm.DB, data, turno, equipe string) (bool, error)
	Listar(db *gorm.DB, f Filtros) ([]DiarioPlanejamento, error)
	Recentes(db *gorm.DB, limite int) ([]DiarioPlanejamento, error)
	Estatisticas(db *gorm.DB, hoje string) (*Estatisticas, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, d *DiarioPlanejamento) error {
	return db.Create(d).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, d *DiarioPlanejamento) error {
	return db.Save(d).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*DiarioPlanejamento, error) {
	var d DiarioPlanejamento
	err := db.First(&d, id).Error
	return &d, err
}

func (r *repositoryImpl) ExistePorChave(db *gorm.DB, data, turno, equipe string) (bool, error) {
	var total int64
	err := db.Model(&DiarioPlanejamento{}).
		Where("data = ? AND turno = ? AND equipe = ?", data, turno, equipe).
		Count(&total).Error
	return total > 0, err
}

// Listar aplica filtros conjuntivos e ordena por data decrescente.
// O filtro de equipe é substring, sem diferenciar maiúsculas.
func (r *repositoryImpl) Listar(db *gorm.DB, f Filtros) ([]DiarioPlanejamento, error) {
	q := db.Model(&DiarioPlanejamento{})
	if f.DataInicio != "" {
		q = q.Where("data >= ?", f.DataInicio)
	}
	if f.DataFim != "" {
		q = q.Where("data <= ?", f.DataFim)
	}
	if f.Equipe != "" {
		q = q.Where("LOWER(equipe) LIKE ?", "%"+strings.ToLower(f.Equipe)+"%")
	}
	if f.Turno != "" {
		q = q.Where("turno = ?", f.Turno)
	}
	var lista []DiarioPlanejamento
	err := q.Order("data DESC").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) Recentes(db *gorm.DB, limite int) ([]DiarioPlanejamento, error) {
	var lista []DiarioPlanejamento
	err := db.Order("created_at DESC").Limit(limite).Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) Estatisticas(db *gorm.DB, hoje string) (*Estatisticas, error) {
	est := &Estatisticas{StatusCounts: map[string]int64{}}

	if err := db.Model(&DiarioPlanejamento{}).Count(&est.TotalPlanejamentos).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&DiarioPlanejamento{}).
		Where("status_final = ?", StatusFinalizado).
		Count(&est.Finalizados).Error; err != nil {
		return nil, err
	}

	var media *float64
	if err := db.Model(&DiarioPlanejamento{}).
		Select("AVG(eficiencia)").
		Where("eficiencia IS NOT NULL").
		Scan(&media).Error; err != nil {
		return nil, err
	}
	if media != nil {
		est.EficienciaMedia = *media
	}

	var porStatus []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&DiarioPlanejamento{}).
		Select("COALESCE(status_final, '') AS status, COUNT(*) AS total").
		Group("status_final").
		Scan(&porStatus).Error; err != nil {
		return nil, err
	}
	for _, s := range porStatus {
		est.StatusCounts[s.Status] = s.Total
	}

	if err := db.Model(&DiarioPlanejamento{}).
		Select("COALESCE(SUM(protocolos_nao_enviados_prazo), 0)").
		Scan(&est.TotalNaoEnviados).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&DiarioPlanejamento{}).
		Select("COALESCE(SUM(protocolos_vencem_no_turno), 0)").
		Where("data = ?", hoje).
		Scan(&est.TotalVencemHoje).Error; err != nil {
		return nil, err
	}

	return est, nil
}
