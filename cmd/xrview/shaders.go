// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

// phongVertex is the GLSL vertex shader of the demo scene, using the
// attribute and matrix names that raylib binds by default.
const phongVertex = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;

out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;

void main() {
	fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
	fragTexCoord = vertexTexCoord;
	fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 1.0)));
	gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const phongFragment = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;

uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec4 ambient;
uniform vec4 emissive;
uniform vec3 lightDir;
uniform vec3 lightColor;
uniform vec3 viewPos;
uniform float shiny;

out vec4 finalColor;

void main() {
	vec4 base = texture(texture0, fragTexCoord) * colDiffuse;
	vec3 n = normalize(fragNormal);
	vec3 l = normalize(-lightDir);
	vec3 v = normalize(viewPos - fragPosition);
	float diff = max(dot(n, l), 0.0);
	float specular = 0.0;
	if (diff > 0.0) {
		specular = pow(max(dot(v, reflect(-l, n)), 0.0), shiny);
	}
	vec3 c = base.rgb * (ambient.rgb + diff * lightColor) + specular * lightColor + emissive.rgb;
	finalColor = vec4(c, base.a);
}
`
