// Package status manages Pool status fields: conditions, phase
// transitions and the health reported by the tool.
package status

import (
	"github.com/jbweber/zpoolctl/api/v1alpha1"
)

// SetCondition adds or updates a condition on the pool.
// The LastTransitionTime only moves when the status changes.
func SetCondition(p *v1alpha1.Pool, condType string, status v1alpha1.ConditionStatus, reason, message string) {
	now := v1alpha1.Now()

	for i := range p.Status.Conditions {
		if p.Status.Conditions[i].Type == condType {
			existing := &p.Status.Conditions[i]
			if existing.Status != status {
				existing.LastTransitionTime = now
			}
			existing.Status = status
			existing.Reason = reason
			existing.Message = message
			return
		}
	}

	p.Status.Conditions = append(p.Status.Conditions, v1alpha1.Condition{
		Type:               condType,
		Status:             status,
		LastTransitionTime: now,
		Reason:             reason,
		Message:            message,
	})
}

// GetCondition returns a condition by type, or nil if not found.
func GetCondition(p *v1alpha1.Pool, condType string) *v1alpha1.Condition {
	for i := range p.Status.Conditions {
		if p.Status.Conditions[i].Type == condType {
			return &p.Status.Conditions[i]
		}
	}
	return nil
}

// IsConditionTrue returns true if the condition exists and has status True.
func IsConditionTrue(p *v1alpha1.Pool, condType string) bool {
	cond := GetCondition(p, condType)
	return cond != nil && cond.Status == v1alpha1.ConditionTrue
}

// IsConditionFalse returns true if the condition exists and has status False.
func IsConditionFalse(p *v1alpha1.Pool, condType string) bool {
	cond := GetCondition(p, condType)
	return cond != nil && cond.Status == v1alpha1.ConditionFalse
}

// RemoveCondition removes a condition by type.
func RemoveCondition(p *v1alpha1.Pool, condType string) {
	filtered := make([]v1alpha1.Condition, 0, len(p.Status.Conditions))
	for _, c := range p.Status.Conditions {
		if c.Type != condType {
			filtered = append(filtered, c)
		}
	}
	p.Status.Conditions = filtered
}

// MarkWarnings records stderr text from a command that otherwise
// succeeded. An empty message clears the condition.
func MarkWarnings(p *v1alpha1.Pool, message string) {
	if message == "" {
		SetCondition(p, v1alpha1.ConditionWarnings, v1alpha1.ConditionFalse, "NoWarnings", "")
		return
	}
	SetCondition(p, v1alpha1.ConditionWarnings, v1alpha1.ConditionTrue, "StderrOutput", message)
}
