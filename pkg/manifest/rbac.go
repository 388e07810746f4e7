package manifest

import (
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"

	"github.com/Arunachalam-140897/DevEngine/pkg/topology"
)

// rbacVerbs and rbacResources define the application Role.
var (
	rbacVerbs     = []string{"get", "list", "watch", "create", "update", "delete"}
	rbacResources = []string{"pods", "services", "configmaps", "secrets"}
)

// renderRBAC renders the ServiceAccount, Role and RoleBinding of the application.
func renderRBAC(s scope) ([]*Rendered, error) {
	saName := topology.ServiceAccountName(s.app)
	roleName := topology.RoleName(s.app)
	bindingName := topology.RoleBindingName(s.app)

	sa := &corev1.ServiceAccount{
		TypeMeta:   typeMeta(corev1.SchemeGroupVersion.String(), "ServiceAccount"),
		ObjectMeta: objectMeta(saName, s.namespace, s.appLabels()),
	}

	role := &rbacv1.Role{
		TypeMeta:   typeMeta(rbacv1.SchemeGroupVersion.String(), "Role"),
		ObjectMeta: objectMeta(roleName, s.namespace, s.appLabels()),
		Rules: []rbacv1.PolicyRule{{
			APIGroups: []string{""},
			Resources: rbacResources,
			Verbs:     rbacVerbs,
		}},
	}

	binding := &rbacv1.RoleBinding{
		TypeMeta:   typeMeta(rbacv1.SchemeGroupVersion.String(), "RoleBinding"),
		ObjectMeta: objectMeta(bindingName, s.namespace, s.appLabels()),
		Subjects: []rbacv1.Subject{{
			Kind:      rbacv1.ServiceAccountKind,
			Name:      saName,
			Namespace: s.namespace,
		}},
		RoleRef: rbacv1.RoleRef{
			APIGroup: rbacv1.GroupName,
			Kind:     "Role",
			Name:     roleName,
		},
	}

	out := make([]*Rendered, 0, 3)
	for _, item := range []struct {
		file, kind, name string
		obj              any
	}{
		{"serviceaccount.yaml", "ServiceAccount", saName, sa},
		{"role.yaml", "Role", roleName, role},
		{"rolebinding.yaml", "RoleBinding", bindingName, binding},
	} {
		r, err := render(item.file, item.kind, item.name, item.obj)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
