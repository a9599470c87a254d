package helper

import "FestivalMarket-App/internal/domain/model"

// FilterInCorridor はコリドー内にあるPOIのみを抽出する（入力順を保持）
func FilterInCorridor(pois []model.POI, corridor *model.RouteCorridor) []model.POI {
	var filtered []model.POI
	for _, p := range pois {
		if CorridorContains(corridor, p.Location) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// DedupExportRows は (name, vicinity) が同じ行を最初の1件にまとめる
func DedupExportRows(rows []model.ExportRow) []model.ExportRow {
	seen := make(map[[2]string]struct{}, len(rows))
	result := make([]model.ExportRow, 0, len(rows))
	for _, row := range rows {
		key := row.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, row)
	}
	return result
}

// NearestByDistance は距離が最小の候補を返す（同値の場合は先に出現したもの）
func NearestByDistance(candidates []model.EntryCandidate) (model.EntryCandidate, bool) {
	if len(candidates) == 0 {
		return model.EntryCandidate{}, false
	}
	nearest := candidates[0]
	for _, c := range candidates[1:] {
		if c.DistanceKm < nearest.DistanceKm {
			nearest = c
		}
	}
	return nearest, true
}

// GroupByDirection は候補を方位ごとにまとめる（各グループ内は入力順）
func GroupByDirection(candidates []model.EntryCandidate) map[model.Direction][]model.EntryCandidate {
	groups := make(map[model.Direction][]model.EntryCandidate)
	for _, c := range candidates {
		groups[c.Direction] = append(groups[c.Direction], c)
	}
	return groups
}
